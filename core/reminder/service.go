package reminder

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
)

type Service struct {
	sync     *collection.Synchronizer[Reminder]
	validate *validator.Validate
}

func NewService(store collection.Store, validate *validator.Validate, logger core.Logger, opts ...collection.Option) *Service {
	opts = append([]collection.Option{collection.WithLogger(logger)}, opts...)
	return &Service{
		sync:     collection.New[Reminder](store, collection.Reminders, opts...),
		validate: validate,
	}
}

func (svc *Service) Now() time.Time { return svc.sync.Now() }

func (svc *Service) List(ctx context.Context, owner string) ([]Reminder, error) {
	return svc.sync.FetchAll(ctx, owner)
}

func (svc *Service) Stats(ctx context.Context, owner string) (Stats, error) {
	reminders, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(reminders, svc.sync.Now()), nil
}

func (svc *Service) Add(ctx context.Context, owner string, in Input) ([]Reminder, error) {
	if err := in.Validate(svc.validate, svc.sync.Now()); err != nil {
		return nil, err
	}
	return svc.sync.Add(ctx, owner, Reminder{
		Title:       in.Title,
		Date:        in.Date,
		Time:        in.Time,
		IsRecurring: in.IsRecurring,
		RepeatType:  in.RepeatType,
	})
}

func (svc *Service) Edit(ctx context.Context, owner, id string, in Input) ([]Reminder, error) {
	if err := in.Validate(svc.validate, svc.sync.Now()); err != nil {
		return nil, err
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{
		"title":       in.Title,
		"date":        in.Date,
		"time":        in.Time,
		"isRecurring": in.IsRecurring,
		"repeatType":  in.RepeatType,
		"isCompleted": in.IsCompleted,
	})
}

func (svc *Service) ToggleCompleted(ctx context.Context, owner, id string) ([]Reminder, error) {
	reminders, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	r, ok := collection.Find(reminders, id)
	if !ok {
		return nil, errors.Wrapf(core.ErrItemNotFound, "reminder %q", id)
	}
	var completedAt interface{}
	if !r.IsCompleted {
		completedAt = svc.sync.Timestamp()
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{
		"isCompleted": !r.IsCompleted,
		"completedAt": completedAt,
	})
}

func (svc *Service) Delete(ctx context.Context, owner, id string) ([]Reminder, error) {
	return svc.sync.Delete(ctx, owner, id)
}
