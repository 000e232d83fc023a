// Package media holds the image upload boundary shared by the modules attaching pictures.
package media

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
)

// MaxSize is the largest accepted upload, in bytes.
const MaxSize = 5 << 20

var (
	ErrTooLarge = errors.New("image must be at most 5MB")
	ErrNotImage = errors.New("only image files are accepted")
)

// File is an image about to be uploaded.
type File struct {
	Name        string
	ContentType string // sniffed when empty
	Data        []byte
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// ReadFile loads the file at path, sniffing its content type.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrapf(err, "reading %s", path)
	}
	return File{Name: filepath.Base(path), ContentType: http.DetectContentType(data), Data: data}, nil
}

// Check rejects files over MaxSize and files which are not images.
func Check(f File) error {
	if len(f.Data) > MaxSize {
		return core.NewValidationError(ErrTooLarge, core.FieldError{Field: "file", Error: ErrTooLarge.Error()})
	}
	ct := f.ContentType
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	if !strings.HasPrefix(ct, "image/") {
		return core.NewValidationError(ErrNotImage, core.FieldError{Field: "file", Error: ErrNotImage.Error()})
	}
	return nil
}

// Upload checks f then hands it to up. Uploader failures are reported as core.ErrUploadFailed.
func Upload(ctx context.Context, up Uploader, f File) (string, error) {
	if err := Check(f); err != nil {
		return "", err
	}
	url, err := up.Upload(ctx, f)
	if err != nil {
		if core.KindOf(err) == core.KindUploadFailure {
			return "", err
		}
		return "", errors.Wrapf(core.ErrUploadFailed, "%s: %v", f.Name, err)
	}
	return url, nil
}
