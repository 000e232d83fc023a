package inmemdb

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
)

type documentStore struct {
	db *docTable
}

var _ collection.Store = (*documentStore)(nil)

func NewDocumentStore(db *DB) collection.Store {
	return &documentStore{db: db.docs}
}

func (s *documentStore) List(_ context.Context, owner, coll string) ([]collection.Document, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	rows := make([]*docRow, 0)
	for _, row := range s.db.rows {
		if row.owner == owner && row.collection == coll {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	docs := make([]collection.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := toDocument(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *documentStore) Create(_ context.Context, owner, coll string, data collection.Fields) (collection.Document, error) {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	s.db.seq++
	id := uuid.New().String()
	row := &docRow{id: id, seq: s.db.seq, owner: owner, collection: coll, data: data.WithoutReserved()}
	s.db.rows[id] = row
	return toDocument(row)
}

func (s *documentStore) Patch(_ context.Context, owner, coll, id string, fields collection.Fields) (collection.Document, error) {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	row, ok := s.db.rows[id]
	if !ok || row.owner != owner || row.collection != coll {
		return collection.Document{}, core.ErrItemNotFound
	}
	row.data = row.data.Merge(fields)
	return toDocument(row)
}

func (s *documentStore) Remove(_ context.Context, owner, coll, id string) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if row, ok := s.db.rows[id]; ok && row.owner == owner && row.collection == coll {
		delete(s.db.rows, id)
	}
	return nil
}

// toDocument deep copies row so callers never share state with the table.
func toDocument(row *docRow) (collection.Document, error) {
	b, err := json.Marshal(row.data)
	if err != nil {
		return collection.Document{}, err
	}
	var data collection.Fields
	if err := json.Unmarshal(b, &data); err != nil {
		return collection.Document{}, err
	}
	return collection.Document{ID: row.id, OwnerID: row.owner, Data: data}, nil
}
