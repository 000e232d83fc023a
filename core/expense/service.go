package expense

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
)

type Service struct {
	sync     *collection.Synchronizer[Expense]
	validate *validator.Validate
}

func NewService(store collection.Store, validate *validator.Validate, logger core.Logger, opts ...collection.Option) *Service {
	opts = append([]collection.Option{collection.WithLogger(logger)}, opts...)
	return &Service{
		sync:     collection.New[Expense](store, collection.Expenses, opts...),
		validate: validate,
	}
}

func (svc *Service) List(ctx context.Context, owner string) ([]Expense, error) {
	return svc.sync.FetchAll(ctx, owner)
}

// Now returns the service clock reading, used for the date filters.
func (svc *Service) Now() time.Time { return svc.sync.Now() }

// Stats summarizes owner's expenses as of the service clock.
func (svc *Service) Stats(ctx context.Context, owner string) (Stats, error) {
	expenses, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(expenses, svc.sync.Now()), nil
}

func (svc *Service) Add(ctx context.Context, owner string, in Input) ([]Expense, error) {
	if err := in.Validate(svc.validate, svc.sync.Now()); err != nil {
		return nil, err
	}
	return svc.sync.Add(ctx, owner, Expense{
		Name:     in.Name,
		Amount:   in.Amount,
		Category: in.Category,
		Date:     in.Date,
		Notes:    in.Notes,
	})
}

func (svc *Service) Edit(ctx context.Context, owner, id string, in Input) ([]Expense, error) {
	if err := in.Validate(svc.validate, svc.sync.Now()); err != nil {
		return nil, err
	}
	return svc.sync.Update(ctx, owner, id, in.fields())
}

func (svc *Service) Delete(ctx context.Context, owner, id string) ([]Expense, error) {
	return svc.sync.Delete(ctx, owner, id)
}
