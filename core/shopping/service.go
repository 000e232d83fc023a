package shopping

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/media"
)

type Service struct {
	sync     *collection.Synchronizer[Item]
	uploader media.Uploader
	validate *validator.Validate
}

func NewService(store collection.Store, uploader media.Uploader, validate *validator.Validate, logger core.Logger, opts ...collection.Option) *Service {
	opts = append([]collection.Option{collection.WithLogger(logger)}, opts...)
	return &Service{
		sync:     collection.New[Item](store, collection.ShoppingItems, opts...),
		uploader: uploader,
		validate: validate,
	}
}

func (svc *Service) List(ctx context.Context, owner string) ([]Item, error) {
	return svc.sync.FetchAll(ctx, owner)
}

// AttachImage uploads f and sets it as the image of in. On failure in is left untouched.
func (svc *Service) AttachImage(ctx context.Context, in *Input, f media.File) error {
	url, err := media.Upload(ctx, svc.uploader, f)
	if err != nil {
		return err
	}
	in.Image = url
	return nil
}

func (svc *Service) Add(ctx context.Context, owner string, in Input) ([]Item, error) {
	if err := in.Validate(svc.validate); err != nil {
		return nil, err
	}
	return svc.sync.Add(ctx, owner, Item{
		Name:     in.Name,
		Quantity: in.Quantity,
		Category: in.Category,
		Image:    in.Image,
	})
}

func (svc *Service) Edit(ctx context.Context, owner, id string, in Input) ([]Item, error) {
	if err := in.Validate(svc.validate); err != nil {
		return nil, err
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{
		"name":     in.Name,
		"quantity": in.Quantity,
		"category": in.Category,
		"image":    in.Image,
	})
}

func (svc *Service) ToggleBought(ctx context.Context, owner, id string) ([]Item, error) {
	items, err := svc.sync.FetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	it, ok := collection.Find(items, id)
	if !ok {
		return nil, errors.Wrapf(core.ErrItemNotFound, "shopping item %q", id)
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{"bought": !it.Bought})
}

func (svc *Service) Delete(ctx context.Context, owner, id string) ([]Item, error) {
	return svc.sync.Delete(ctx, owner, id)
}
