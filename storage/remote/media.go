package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/media"
)

var _ media.Uploader = (*Client)(nil)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload posts f to the API media endpoint and returns the public URL.
func (c *Client) Upload(ctx context.Context, f media.File) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(f.Name)))
	if f.ContentType != "" {
		h.Set("Content-Type", f.ContentType)
	}
	part, err := w.CreatePart(h)
	if err != nil {
		return "", errors.Wrap(err, "building upload")
	}
	if _, err = part.Write(f.Data); err != nil {
		return "", errors.Wrap(err, "building upload")
	}
	if err = w.Close(); err != nil {
		return "", errors.Wrap(err, "building upload")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/media", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(req, &out); err != nil {
		if core.KindOf(err) == core.KindValidation {
			return "", err
		}
		return "", errors.Wrapf(core.ErrUploadFailed, "%s: %v", f.Name, err)
	}
	return out.URL, nil
}
