package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/media"
	"github.com/trezcool/lifetrack/core/user"
)

var (
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAccountDeactivated = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errHttpNotFound       = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if len(origErr.Fields) > 0 {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			switch origErr.Err {
			case media.ErrTooLarge:
				code = http.StatusRequestEntityTooLarge
			case media.ErrNotImage:
				code = http.StatusUnsupportedMediaType
			default:
				code = http.StatusBadRequest
			}
		default:
			switch {
			case origErr == user.ErrAuthFailed:
				code, message = http.StatusBadRequest, origErr.Error()
			case origErr == user.ErrAccountDeactivated:
				code, message = http.StatusForbidden, origErr.Error()
			case core.KindOf(err) == core.KindItemNotFound:
				code, message = http.StatusNotFound, err.Error()
			default: // any other error is a server error
				code = serverErrorCode(err)
				msg := http.StatusText(code)
				message = msg

				args := []interface{}{errors.Wrap(err, msg)}
				if usr, uErr := getContextUser(ctx); uErr == nil {
					args = append(args, usr)
				}
				logger.Error(msg, args...)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
				if ctx.Echo().Debug {
					message = err.Error()
				}
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, echo.Map{"error": message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func serverErrorCode(err error) int {
	switch core.KindOf(err) {
	case core.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case core.KindUploadFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
