package mediasvc

import (
	"path/filepath"
	"time"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/media"
)

const cloudinaryTimeout = 30 * time.Second

// New returns the configured uploader. The LocalStore is nil unless the local backend is in use.
func New(conf *core.Config) (media.Uploader, *LocalStore) {
	if conf.Media.Backend == "cloudinary" {
		return NewCloudinaryUploader(conf.Media.UploadURL, conf.Media.UploadPreset, cloudinaryTimeout), nil
	}
	dir := conf.Media.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(conf.WorkDir, dir)
	}
	local := NewLocalStore(dir, conf.Media.BaseURL)
	return local, local
}
