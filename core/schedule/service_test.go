package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/schedule"
	inmemdb "github.com/trezcool/lifetrack/storage/database/inmem"
)

var now = time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)

func newService() (*schedule.Service, collection.Store) {
	validate, translator := core.NewValidator()
	schedule.InitValidators(validate, translator)
	store := inmemdb.NewDocumentStore(inmemdb.Open())
	svc := schedule.NewService(store, validate, core.NopLogger(), collection.WithClock(func() time.Time { return now }))
	return svc, store
}

func TestService_Collision(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	entries, err := svc.Add(ctx, "u1", schedule.EntryInput{Task: "Gym", Day: "السبت", TimeSlot: "8:00 ص - 9:00 ص"})
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = svc.Add(ctx, "u1", schedule.EntryInput{Task: "Study", Day: "السبت", TimeSlot: "8:00 ص - 9:00 ص"})
	assert.Equal(t, core.KindValidation, core.KindOf(err))
	if vErr, ok := err.(*core.ValidationError); assert.True(t, ok) {
		assert.Equal(t, schedule.ErrSlotTaken, vErr.Err)
	}

	// legacy label collides with its current equivalent
	_, err = svc.Add(ctx, "u1", schedule.EntryInput{Task: "Study", Day: "السبت", TimeSlot: `8\9`})
	assert.Equal(t, core.KindValidation, core.KindOf(err))

	// nothing reached the store
	docs, err := store.List(ctx, "u1", collection.WeeklySchedule)
	assert.NoError(t, err)
	if assert.Len(t, docs, 1) {
		assert.Equal(t, "Gym", docs[0].Data["task"])
	}

	// grid and list unchanged
	list, err := svc.List(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	g, err := svc.Grid(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 1, g.Len())
	e, ok := g.At("السبت", "8:00 ص - 9:00 ص")
	assert.True(t, ok)
	assert.Equal(t, "Gym", e.Task)

	// another user's grid is independent
	_, err = svc.Add(ctx, "u2", schedule.EntryInput{Task: "Study", Day: "السبت", TimeSlot: "8:00 ص - 9:00 ص"})
	assert.NoError(t, err)
}

func TestService_Edit(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	entries, _ := svc.Add(ctx, "u1", schedule.EntryInput{Task: "Gym", Day: "السبت", TimeSlot: "8:00 ص - 9:00 ص"})
	gym := entries[0]
	entries, _ = svc.Add(ctx, "u1", schedule.EntryInput{Task: "Read", Day: "السبت", TimeSlot: "9:00 ص - 10:00 ص"})

	tests := []struct {
		name     string
		id       string
		in       schedule.EntryInput
		wantKind core.ErrorKind
	}{
		{name: "keep own slot", id: gym.ID, in: schedule.EntryInput{Task: "Gym!", Day: "السبت", TimeSlot: "8:00 ص - 9:00 ص"}},
		{name: "move onto taken slot", id: gym.ID, in: schedule.EntryInput{Task: "Gym", Day: "السبت", TimeSlot: "9:00 ص - 10:00 ص"}, wantKind: core.KindValidation},
		{name: "unknown day", id: gym.ID, in: schedule.EntryInput{Task: "Gym", Day: "Monday", TimeSlot: "9:00 ص - 10:00 ص"}, wantKind: core.KindValidation},
		{name: "blank task", id: gym.ID, in: schedule.EntryInput{Task: "  ", Day: "السبت", TimeSlot: "8:00 ص - 9:00 ص"}, wantKind: core.KindValidation},
		{name: "missing entry", id: "nope", in: schedule.EntryInput{Task: "Gym", Day: "الأحد", TimeSlot: "8:00 ص - 9:00 ص"}, wantKind: core.KindItemNotFound},
		{name: "move to free slot", id: gym.ID, in: schedule.EntryInput{Task: "Gym", Day: "الأحد", TimeSlot: `7\8`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Edit(ctx, "u1", tt.id, tt.in)
			if tt.wantKind == core.KindUnknown {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantKind, core.KindOf(err))
			}
		})
	}

	entries, _ = svc.List(ctx, "u1")
	moved, ok := collection.Find(entries, gym.ID)
	assert.True(t, ok)
	assert.Equal(t, "الأحد", moved.Day)
	assert.Equal(t, "7:00 م - 8:00 م", moved.TimeSlot)
}

func TestService_ToggleCompleted(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	entries, _ := svc.Add(ctx, "u1", schedule.EntryInput{Task: "Gym", Day: "السبت"})
	e := entries[0]
	assert.Equal(t, schedule.DefaultSlot, e.TimeSlot)

	entries, err := svc.ToggleCompleted(ctx, "u1", e.ID)
	assert.NoError(t, err)
	assert.True(t, entries[0].Completed)
	if assert.NotNil(t, entries[0].CompletedAt) {
		assert.True(t, now.Equal(*entries[0].CompletedAt))
	}
	assert.Equal(t, e.Day, entries[0].Day)
	assert.Equal(t, e.TimeSlot, entries[0].TimeSlot)

	entries, err = svc.ToggleCompleted(ctx, "u1", e.ID)
	assert.NoError(t, err)
	assert.False(t, entries[0].Completed)
	assert.Nil(t, entries[0].CompletedAt)

	_, err = svc.ToggleCompleted(ctx, "u1", "nope")
	assert.Equal(t, core.KindItemNotFound, core.KindOf(err))
}
