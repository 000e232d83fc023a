package mediasvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/media"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// CloudinaryUploader posts unsigned uploads to a Cloudinary style endpoint.
type CloudinaryUploader struct {
	uploadURL string
	preset    string
	client    *http.Client
}

var _ media.Uploader = (*CloudinaryUploader)(nil)

func NewCloudinaryUploader(uploadURL, preset string, timeout time.Duration) *CloudinaryUploader {
	return &CloudinaryUploader{
		uploadURL: uploadURL,
		preset:    preset,
		client:    &http.Client{Timeout: timeout},
	}
}

func (u *CloudinaryUploader) body(f media.File) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("upload_preset", u.preset); err != nil {
		return nil, "", err
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(f.Name)))
	if f.ContentType != "" {
		h.Set("Content-Type", f.ContentType)
	}
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err = part.Write(f.Data); err != nil {
		return nil, "", err
	}
	if err = w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, f media.File) (string, error) {
	buf, ct, err := u.body(f)
	if err != nil {
		return "", errors.Wrap(err, "building upload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, buf)
	if err != nil {
		return "", errors.Wrap(err, "building upload request")
	}
	req.Header.Set("Content-Type", ct)

	res, err := u.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(core.ErrUploadFailed, "%s: %v", f.Name, err)
	}
	defer res.Body.Close()

	var out struct {
		SecureURL string `json:"secure_url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	_ = json.Unmarshal(b, &out)
	if res.StatusCode >= http.StatusBadRequest {
		msg := out.Error.Message
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return "", errors.Wrapf(core.ErrUploadFailed, "%s: %s", f.Name, msg)
	}
	if out.SecureURL == "" {
		return "", errors.Wrapf(core.ErrUploadFailed, "%s: no url in response", f.Name)
	}
	return out.SecureURL, nil
}
