package reminder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/reminder"
	inmemdb "github.com/trezcool/lifetrack/storage/database/inmem"
)

func TestService(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	validate, translator := core.NewValidator()
	reminder.InitValidators(validate, translator)
	svc := reminder.NewService(
		inmemdb.NewDocumentStore(inmemdb.Open()), validate, core.NopLogger(),
		collection.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	tests := []struct {
		name           string
		in             reminder.Input
		wantErr        bool
		wantRepeatType string
		wantDate       string
	}{
		{name: "blank title", in: reminder.Input{Title: "  "}, wantErr: true},
		{name: "bad time", in: reminder.Input{Title: "x", Time: "9am"}, wantErr: true},
		{name: "bad repeat type", in: reminder.Input{Title: "x", IsRecurring: true, RepeatType: "yearly"}, wantErr: true},
		{name: "defaults", in: reminder.Input{Title: "Water plants"}, wantDate: "2024-01-02"},
		{name: "repeat type dropped", in: reminder.Input{Title: "Once", Date: "2024-01-05", RepeatType: "شهري"}, wantDate: "2024-01-05"},
		{name: "recurring default", in: reminder.Input{Title: "Daily", IsRecurring: true}, wantDate: "2024-01-02", wantRepeatType: "يومي"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminders, err := svc.Add(ctx, "u1", tt.in)
			if tt.wantErr {
				assert.Equal(t, core.KindValidation, core.KindOf(err))
				return
			}
			if assert.NoError(t, err) {
				r := reminders[len(reminders)-1]
				assert.Equal(t, tt.wantDate, r.Date)
				assert.Equal(t, tt.wantRepeatType, r.RepeatType)
				assert.False(t, r.IsCompleted)
			}
		})
	}

	reminders, _ := svc.List(ctx, "u1")
	id := reminders[0].ID

	reminders, err := svc.ToggleCompleted(ctx, "u1", id)
	assert.NoError(t, err)
	r, _ := collection.Find(reminders, id)
	assert.True(t, r.IsCompleted)
	if assert.NotNil(t, r.CompletedAt) {
		assert.True(t, now.Equal(*r.CompletedAt))
	}

	reminders, err = svc.ToggleCompleted(ctx, "u1", id)
	assert.NoError(t, err)
	r, _ = collection.Find(reminders, id)
	assert.False(t, r.IsCompleted)
	assert.Nil(t, r.CompletedAt)

	st, err := svc.Stats(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, reminder.Stats{Total: 3, Completed: 0, Pending: 3, Today: 2, Overdue: 0}, st)

	_, err = svc.ToggleCompleted(ctx, "u1", "missing")
	assert.Equal(t, core.KindItemNotFound, core.KindOf(err))
}
