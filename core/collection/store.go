package collection

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Fields holds the schemaless payload of a document.
type Fields map[string]interface{}

// Document is one item of a user's sub-collection as stored remotely.
// On the wire it is a flat JSON object: {"id", "ownerId", ...fields}.
type Document struct {
	ID      string
	OwnerID string
	Data    Fields
}

// Reserved keys are owned by the store and never part of Data.
const (
	KeyID      = "id"
	KeyOwnerID = "ownerId"
)

func (d Document) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(d.Data)+2)
	for k, v := range d.Data {
		m[k] = v
	}
	m[KeyID] = d.ID
	m[KeyOwnerID] = d.OwnerID
	return json.Marshal(m)
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var m Fields
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	d.ID, _ = m[KeyID].(string)
	d.OwnerID, _ = m[KeyOwnerID].(string)
	d.Data = m.WithoutReserved()
	return nil
}

// WithoutReserved returns a copy of f without the store owned keys.
func (f Fields) WithoutReserved() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if k == KeyID || k == KeyOwnerID {
			continue
		}
		out[k] = v
	}
	return out
}

// Merge returns a copy of f with patch applied on top.
func (f Fields) Merge(patch Fields) Fields {
	out := make(Fields, len(f)+len(patch))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range patch.WithoutReserved() {
		out[k] = v
	}
	return out
}

// Store is the remote multi-tenant document store. Every call is scoped to one owner's
// sub-collection; items of other owners are never visible.
//
// Patch on a missing id fails with core.ErrItemNotFound; Remove on a missing id succeeds.
type Store interface {
	List(ctx context.Context, owner, coll string) ([]Document, error)
	Create(ctx context.Context, owner, coll string, data Fields) (Document, error)
	Patch(ctx context.Context, owner, coll, id string, fields Fields) (Document, error)
	Remove(ctx context.Context, owner, coll, id string) error
}

// ToFields converts a module item into document fields, dropping the store owned keys.
func ToFields(v interface{}) (Fields, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding item")
	}
	var f Fields
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrap(err, "encoding item")
	}
	return f.WithoutReserved(), nil
}

// Decode converts a document into a module item.
func Decode[T any](doc Document) (T, error) {
	var item T
	b, err := json.Marshal(doc)
	if err != nil {
		return item, errors.Wrap(err, "decoding document")
	}
	if err := json.Unmarshal(b, &item); err != nil {
		return item, errors.Wrapf(err, "decoding document %s", doc.ID)
	}
	return item, nil
}
