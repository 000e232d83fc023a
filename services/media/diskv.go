// Package mediasvc provides the media.Uploader backends used by the API.
package mediasvc

import (
	"context"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/media"
)

var (
	extRegex = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)
	keyRegex = regexp.MustCompile(`^[0-9a-f-]{36}(\.[a-z0-9]{1,5})?$`)
)

// LocalStore keeps uploads on disk and serves them under <baseURL>/media/<key>.
type LocalStore struct {
	d       *diskv.Diskv
	baseURL string
}

var _ media.Uploader = (*LocalStore)(nil)

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(key string) []string { return []string{key[:2]} },
			CacheSizeMax: 8 << 20,
			FilePerm:     0644,
			PathPerm:     0755,
		}),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func extension(f media.File) string {
	if ext := strings.ToLower(filepath.Ext(f.Name)); extRegex.MatchString(ext) {
		return ext
	}
	ct := f.ContentType
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	if exts, err := mime.ExtensionsByType(ct); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func (s *LocalStore) Upload(ctx context.Context, f media.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := uuid.NewString() + extension(f)
	if err := s.d.Write(key, f.Data); err != nil {
		return "", errors.Wrapf(core.ErrUploadFailed, "writing %s: %v", key, err)
	}
	return s.baseURL + "/media/" + key, nil
}

// Read returns the content and sniffed content type of key.
func (s *LocalStore) Read(key string) ([]byte, string, error) {
	if !keyRegex.MatchString(key) || !s.d.Has(key) {
		return nil, "", errors.Wrapf(core.ErrItemNotFound, "media %q", key)
	}
	data, err := s.d.Read(key)
	if err != nil {
		return nil, "", errors.Wrapf(err, "reading %s", key)
	}
	ct := mime.TypeByExtension(filepath.Ext(key))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return data, ct, nil
}
