package remote

import (
	"context"
	"net/http"

	"github.com/trezcool/lifetrack/core/collection"
)

var _ collection.Store = (*Client)(nil)

// The API scopes every collection call to the token's user; owner is only checked
// against the returned documents.

func (c *Client) List(ctx context.Context, owner, coll string) ([]collection.Document, error) {
	var docs []collection.Document
	if err := c.doJSON(ctx, http.MethodGet, "/v1/collections/"+escape(coll), nil, &docs); err != nil {
		return nil, err
	}
	out := docs[:0]
	for _, doc := range docs {
		if doc.OwnerID == owner {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, _, coll string, data collection.Fields) (collection.Document, error) {
	var doc collection.Document
	err := c.doJSON(ctx, http.MethodPost, "/v1/collections/"+escape(coll), data.WithoutReserved(), &doc)
	return doc, err
}

func (c *Client) Patch(ctx context.Context, _, coll, id string, fields collection.Fields) (collection.Document, error) {
	var doc collection.Document
	err := c.doJSON(ctx, http.MethodPatch, "/v1/collections/"+escape(coll, id), fields.WithoutReserved(), &doc)
	return doc, err
}

func (c *Client) Remove(ctx context.Context, _, coll, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/collections/"+escape(coll, id), nil, nil)
}
