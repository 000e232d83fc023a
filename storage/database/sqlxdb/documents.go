package sqlxdb

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
)

type documentRow struct {
	ID         string `db:"id"`
	OwnerID    string `db:"owner_id"`
	Collection string `db:"collection"`
	Data       string `db:"data"`
	CreatedAt  int64  `db:"created_at"` // unix nanoseconds
	UpdatedAt  int64  `db:"updated_at"`
}

func (r documentRow) document() (collection.Document, error) {
	var data collection.Fields
	if err := json.Unmarshal([]byte(r.Data), &data); err != nil {
		return collection.Document{}, errors.Wrapf(err, "decoding document %s", r.ID)
	}
	return collection.Document{ID: r.ID, OwnerID: r.OwnerID, Data: data.WithoutReserved()}, nil
}

const documentColumns = "id, owner_id, collection, data, created_at, updated_at"

type documentStore struct {
	db *sqlx.DB
}

var _ collection.Store = (*documentStore)(nil)

// NewDocumentStore returns a collection.Store keeping every document as a JSON row.
func NewDocumentStore(db *sqlx.DB) collection.Store {
	return &documentStore{db: db}
}

func (s *documentStore) List(ctx context.Context, owner, coll string) ([]collection.Document, error) {
	var rows []documentRow
	q := s.db.Rebind("SELECT " + documentColumns + " FROM documents WHERE owner_id = ? AND collection = ? ORDER BY created_at, id")
	if err := s.db.SelectContext(ctx, &rows, q, owner, coll); err != nil {
		return nil, errors.Wrap(err, "selecting documents")
	}

	docs := make([]collection.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *documentStore) Create(ctx context.Context, owner, coll string, data collection.Fields) (collection.Document, error) {
	b, err := json.Marshal(data.WithoutReserved())
	if err != nil {
		return collection.Document{}, errors.Wrap(err, "encoding document")
	}
	now := core.NowFunc().UnixNano()
	row := documentRow{
		ID:         uuid.New().String(),
		OwnerID:    owner,
		Collection: coll,
		Data:       string(b),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	q := s.db.Rebind("INSERT INTO documents (" + documentColumns + ") VALUES (?, ?, ?, ?, ?, ?)")
	if _, err := s.db.ExecContext(ctx, q, row.ID, row.OwnerID, row.Collection, row.Data, row.CreatedAt, row.UpdatedAt); err != nil {
		return collection.Document{}, errors.Wrap(err, "inserting document")
	}
	return row.document()
}

// Patch merges fields into the stored document inside a transaction.
func (s *documentStore) Patch(ctx context.Context, owner, coll, id string, fields collection.Fields) (doc collection.Document, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return collection.Document{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var row documentRow
	q := tx.Rebind("SELECT " + documentColumns + " FROM documents WHERE id = ? AND owner_id = ? AND collection = ?")
	if err = tx.GetContext(ctx, &row, q, id, owner, coll); err != nil {
		if err == sql.ErrNoRows {
			return collection.Document{}, core.ErrItemNotFound
		}
		return collection.Document{}, errors.Wrap(err, "selecting document")
	}

	current, err := row.document()
	if err != nil {
		return collection.Document{}, err
	}
	b, err := json.Marshal(current.Data.Merge(fields))
	if err != nil {
		return collection.Document{}, errors.Wrap(err, "encoding document")
	}
	row.Data = string(b)
	row.UpdatedAt = core.NowFunc().UnixNano()

	q = tx.Rebind("UPDATE documents SET data = ?, updated_at = ? WHERE id = ?")
	if _, err = tx.ExecContext(ctx, q, row.Data, row.UpdatedAt, row.ID); err != nil {
		return collection.Document{}, errors.Wrap(err, "updating document")
	}
	if err = tx.Commit(); err != nil {
		return collection.Document{}, errors.Wrap(err, "committing document")
	}
	return row.document()
}

func (s *documentStore) Remove(ctx context.Context, owner, coll, id string) error {
	q := s.db.Rebind("DELETE FROM documents WHERE id = ? AND owner_id = ? AND collection = ?")
	if _, err := s.db.ExecContext(ctx, q, id, owner, coll); err != nil {
		return errors.Wrap(err, "deleting document")
	}
	return nil
}
