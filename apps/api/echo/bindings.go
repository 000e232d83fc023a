package echoapi

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
)

var errNotAnObject = errors.New("request body must be a JSON object")

// bindFields decodes the request body as a JSON object. echo's binder only fills structs.
func bindFields(ctx echo.Context) (collection.Fields, error) {
	var fields collection.Fields
	dec := json.NewDecoder(ctx.Request().Body)
	if err := dec.Decode(&fields); err != nil {
		if err == io.EOF {
			return collection.Fields{}, nil
		}
		return nil, core.NewValidationError(errNotAnObject)
	}
	if fields == nil {
		return nil, core.NewValidationError(errNotAnObject)
	}
	return fields.WithoutReserved(), nil
}
