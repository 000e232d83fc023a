package echoapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/media"
)

var errFileRequired = errors.New("an image file is required")

type mediaApi struct {
	uploader media.Uploader
	reader   MediaReader
}

func registerMediaAPI(app *echo.Echo, g *echo.Group, authed []echo.MiddlewareFunc, uploader media.Uploader, reader MediaReader) {
	api := mediaApi{uploader: uploader, reader: reader}

	g.POST("/media", api.upload, authed...)
	if reader != nil {
		app.GET("/media/:key", api.serve)
	}
}

// upload re-checks what the client already checked: size and sniffed image type.
func (api *mediaApi) upload(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(errFileRequired, core.FieldError{Field: "file", Error: errFileRequired.Error()})
	}
	if fh.Size > media.MaxSize {
		return core.NewValidationError(media.ErrTooLarge, core.FieldError{Field: "file", Error: media.ErrTooLarge.Error()})
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(io.LimitReader(src, media.MaxSize+1))
	if err != nil {
		return errors.Wrap(err, "reading upload")
	}
	f := media.File{Name: fh.Filename, ContentType: http.DetectContentType(data), Data: data}
	url, err := media.Upload(ctx.Request().Context(), api.uploader, f)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"url": url})
}

func (api *mediaApi) serve(ctx echo.Context) error {
	data, ct, err := api.reader.Read(ctx.Param("key"))
	if err != nil {
		return err
	}
	ctx.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return ctx.Blob(http.StatusOK, ct, data)
}
