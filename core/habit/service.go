package habit

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
)

type Service struct {
	sync     *collection.Synchronizer[Habit]
	validate *validator.Validate
}

func NewService(store collection.Store, validate *validator.Validate, logger core.Logger, opts ...collection.Option) *Service {
	opts = append([]collection.Option{collection.WithLogger(logger)}, opts...)
	return &Service{
		sync:     collection.New[Habit](store, collection.Habits, opts...),
		validate: validate,
	}
}

func (svc *Service) List(ctx context.Context, owner string) ([]Habit, error) {
	return svc.sync.FetchAll(ctx, owner)
}

func (svc *Service) Stats(ctx context.Context, owner string) (Stats, error) {
	habits, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(habits, svc.sync.Now()), nil
}

// Now returns the service clock reading, used to compute the current week.
func (svc *Service) Now() time.Time { return svc.sync.Now() }

func (svc *Service) Add(ctx context.Context, owner string, in Input) ([]Habit, error) {
	if err := in.Validate(svc.validate, svc.sync.Now()); err != nil {
		return nil, err
	}
	return svc.sync.Add(ctx, owner, Habit{
		Name:           in.Name,
		Description:    in.Description,
		Frequency:      in.Frequency,
		TargetTime:     in.TargetTime,
		StartDate:      in.StartDate,
		CompletedDates: []string{},
	})
}

func (svc *Service) Edit(ctx context.Context, owner, id string, in Input) ([]Habit, error) {
	if err := in.Validate(svc.validate, svc.sync.Now()); err != nil {
		return nil, err
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{
		"name":        in.Name,
		"description": in.Description,
		"frequency":   in.Frequency,
		"targetTime":  in.TargetTime,
		"startDate":   in.StartDate,
	})
}

// ToggleDate marks habit id as done on date, or undoes it. date defaults to today.
func (svc *Service) ToggleDate(ctx context.Context, owner, id, date string) ([]Habit, error) {
	if date = core.CleanString(date); date == "" {
		date = core.FormatDate(svc.sync.Now())
	}
	if _, err := core.ParseDate(date, nil); err != nil {
		return nil, core.NewValidationError(errors.New("invalid date"), core.FieldError{Field: "date", Error: "date must be of form YYYY-MM-DD"})
	}
	habits, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	h, ok := collection.Find(habits, id)
	if !ok {
		return nil, errors.Wrapf(core.ErrItemNotFound, "habit %q", id)
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{
		"completedDates":  ToggleDate(h.CompletedDates, date),
		"lastCompletedAt": svc.sync.Timestamp(),
	})
}

func (svc *Service) Delete(ctx context.Context, owner, id string) ([]Habit, error) {
	return svc.sync.Delete(ctx, owner, id)
}
