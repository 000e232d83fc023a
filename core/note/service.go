package note

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/media"
)

type Service struct {
	sync     *collection.Synchronizer[Note]
	uploader media.Uploader
	validate *validator.Validate
	logger   core.Logger
}

func NewService(store collection.Store, uploader media.Uploader, validate *validator.Validate, logger core.Logger, opts ...collection.Option) *Service {
	opts = append([]collection.Option{collection.WithLogger(logger)}, opts...)
	return &Service{
		sync:     collection.New[Note](store, collection.DailyNotes, opts...),
		uploader: uploader,
		validate: validate,
		logger:   logger,
	}
}

func (svc *Service) List(ctx context.Context, owner string) ([]Note, error) {
	return svc.sync.FetchAll(ctx, owner)
}

// AttachImages uploads files and appends their URLs to in.Images.
// A file failing the pre-check or the upload is skipped; the others are still attached
// and the rest of the form is left as is. The first failure is returned.
func (svc *Service) AttachImages(ctx context.Context, in *Input, files ...media.File) error {
	var (
		firstErr error
		failed   int
	)
	for _, f := range files {
		url, err := media.Upload(ctx, svc.uploader, f)
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("image %q not attached", f.Name), err)
			if firstErr == nil {
				firstErr = err
			}
			failed++
			continue
		}
		in.Images = append(in.Images, url)
	}
	if firstErr != nil {
		return errors.WithMessagef(firstErr, "%d of %d images not attached", failed, len(files))
	}
	return nil
}

func (svc *Service) Add(ctx context.Context, owner string, in Input) ([]Note, error) {
	if err := in.Validate(svc.validate); err != nil {
		return nil, err
	}
	return svc.sync.Add(ctx, owner, Note{Title: in.Title, Content: in.Content, Images: in.Images})
}

func (svc *Service) Edit(ctx context.Context, owner, id string, in Input) ([]Note, error) {
	if err := in.Validate(svc.validate); err != nil {
		return nil, err
	}
	return svc.sync.Update(ctx, owner, id, collection.Fields{
		"title":   in.Title,
		"content": in.Content,
		"images":  in.Images,
	})
}

func (svc *Service) Delete(ctx context.Context, owner, id string) ([]Note, error) {
	return svc.sync.Delete(ctx, owner, id)
}
