package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/lifetrack/core/collection"
)

type collectionApi struct {
	store collection.Store
}

// registerCollectionAPI exposes the per-user document store. The API keeps no module logic:
// payloads are stored as sent and every call is scoped to the token's user.
func registerCollectionAPI(g *echo.Group, authed []echo.MiddlewareFunc, store collection.Store) {
	api := collectionApi{store: store}

	cg := g.Group("/collections/:collection", append(authed, knownCollectionMiddleware)...)
	cg.GET("", api.list)
	cg.POST("", api.create)
	cg.PATCH("/:id", api.patch)
	cg.DELETE("/:id", api.destroy)
}

func (api *collectionApi) list(ctx echo.Context) error {
	uid, err := owner(ctx)
	if err != nil {
		return err
	}
	docs, err := api.store.List(ctx.Request().Context(), uid, ctx.Param("collection"))
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []collection.Document{}
	}
	return ctx.JSON(http.StatusOK, docs)
}

func (api *collectionApi) create(ctx echo.Context) error {
	uid, err := owner(ctx)
	if err != nil {
		return err
	}
	fields, err := bindFields(ctx)
	if err != nil {
		return err
	}
	doc, err := api.store.Create(ctx.Request().Context(), uid, ctx.Param("collection"), fields)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, doc)
}

func (api *collectionApi) patch(ctx echo.Context) error {
	uid, err := owner(ctx)
	if err != nil {
		return err
	}
	fields, err := bindFields(ctx)
	if err != nil {
		return err
	}
	doc, err := api.store.Patch(ctx.Request().Context(), uid, ctx.Param("collection"), ctx.Param("id"), fields)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, doc)
}

func (api *collectionApi) destroy(ctx echo.Context) error {
	uid, err := owner(ctx)
	if err != nil {
		return err
	}
	if err := api.store.Remove(ctx.Request().Context(), uid, ctx.Param("collection"), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
