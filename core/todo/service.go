package todo

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
)

type Service struct {
	sync     *collection.Synchronizer[Todo]
	validate *validator.Validate
}

func NewService(store collection.Store, validate *validator.Validate, logger core.Logger, opts ...collection.Option) *Service {
	opts = append([]collection.Option{collection.WithLogger(logger)}, opts...)
	return &Service{
		sync:     collection.New[Todo](store, collection.Todos, opts...),
		validate: validate,
	}
}

func (svc *Service) List(ctx context.Context, owner string) ([]Todo, error) {
	return svc.sync.FetchAll(ctx, owner)
}

func (svc *Service) Add(ctx context.Context, owner string, in Input) ([]Todo, error) {
	if err := in.Validate(svc.validate); err != nil {
		return nil, err
	}
	return svc.sync.Add(ctx, owner, Todo{Title: in.Title, Description: in.Description})
}

func (svc *Service) Edit(ctx context.Context, owner, id string, in Input) ([]Todo, error) {
	if err := in.Validate(svc.validate); err != nil {
		return nil, err
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{
		"title":       in.Title,
		"description": in.Description,
	})
}

func (svc *Service) ToggleCompleted(ctx context.Context, owner, id string) ([]Todo, error) {
	todos, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	t, ok := collection.Find(todos, id)
	if !ok {
		return nil, errors.Wrapf(core.ErrItemNotFound, "todo %q", id)
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{"completed": !t.Completed})
}

func (svc *Service) Delete(ctx context.Context, owner, id string) ([]Todo, error) {
	return svc.sync.Delete(ctx, owner, id)
}
