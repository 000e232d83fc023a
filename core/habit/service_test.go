package habit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/habit"
	inmemdb "github.com/trezcool/lifetrack/storage/database/inmem"
)

func TestService(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	validate, translator := core.NewValidator()
	habit.InitValidators(validate, translator)
	svc := habit.NewService(
		inmemdb.NewDocumentStore(inmemdb.Open()), validate, core.NopLogger(),
		collection.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", habit.Input{Name: "Walk", Frequency: "hourly"})
	assert.Equal(t, core.KindValidation, core.KindOf(err))
	_, err = svc.Add(ctx, "u1", habit.Input{Name: "Walk", TargetTime: "25:00"})
	assert.Equal(t, core.KindValidation, core.KindOf(err))

	habits, err := svc.Add(ctx, "u1", habit.Input{Name: " Walk ", TargetTime: "07:30"})
	assert.NoError(t, err)
	if !assert.Len(t, habits, 1) {
		return
	}
	h := habits[0]
	assert.Equal(t, "Walk", h.Name)
	assert.Equal(t, habit.DefaultFrequency, h.Frequency)
	assert.Equal(t, "2024-01-10", h.StartDate)
	assert.Empty(t, h.CompletedDates)

	habits, err = svc.ToggleDate(ctx, "u1", h.ID, "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-01-10"}, habits[0].CompletedDates)
	assert.NotNil(t, habits[0].LastCompletedAt)

	st, err := svc.Stats(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, habit.Stats{Total: 1, ActiveToday: 1, AvgProgress: 14}, st)

	habits, err = svc.ToggleDate(ctx, "u1", h.ID, "2024-01-10")
	assert.NoError(t, err)
	assert.Empty(t, habits[0].CompletedDates)

	_, err = svc.ToggleDate(ctx, "u1", "missing", "")
	assert.Equal(t, core.KindItemNotFound, core.KindOf(err))
	_, err = svc.ToggleDate(ctx, "u1", h.ID, "10/01/2024")
	assert.Equal(t, core.KindValidation, core.KindOf(err))

	habits, err = svc.Edit(ctx, "u1", h.ID, habit.Input{Name: "Walk 5k", Frequency: "أسبوعي", StartDate: "2024-01-01"})
	assert.NoError(t, err)
	assert.Equal(t, "Walk 5k", habits[0].Name)
	assert.Equal(t, "أسبوعي", habits[0].Frequency)

	habits, err = svc.Delete(ctx, "u1", h.ID)
	assert.NoError(t, err)
	assert.Empty(t, habits)
}
