package mongodb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
)

type documentRecord struct {
	ID         string   `bson:"_id"`
	OwnerID    string   `bson:"ownerId"`
	Collection string   `bson:"collection"`
	Data       bson.Raw `bson:"data"`
	CreatedAt  int64    `bson:"createdAt"`
	UpdatedAt  int64    `bson:"updatedAt"`
}

// document converts the BSON payload back to plain JSON values.
func (r documentRecord) document() (collection.Document, error) {
	doc := collection.Document{ID: r.ID, OwnerID: r.OwnerID, Data: collection.Fields{}}
	if len(r.Data) == 0 {
		return doc, nil
	}
	b, err := bson.MarshalExtJSON(r.Data, false, false)
	if err != nil {
		return collection.Document{}, errors.Wrapf(err, "decoding document %s", r.ID)
	}
	if err := json.Unmarshal(b, &doc.Data); err != nil {
		return collection.Document{}, errors.Wrapf(err, "decoding document %s", r.ID)
	}
	doc.Data = doc.Data.WithoutReserved()
	return doc, nil
}

type documentStore struct {
	coll *mongo.Collection
}

var _ collection.Store = (*documentStore)(nil)

func NewDocumentStore(db *mongo.Database) collection.Store {
	return &documentStore{coll: db.Collection(documentsCollection)}
}

func scope(owner, coll string) bson.D {
	return bson.D{{Key: "ownerId", Value: owner}, {Key: "collection", Value: coll}}
}

func (s *documentStore) List(ctx context.Context, owner, coll string) ([]collection.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, scope(owner, coll), opts)
	if err != nil {
		return nil, errors.Wrap(err, "finding documents")
	}
	var records []documentRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "reading documents")
	}

	docs := make([]collection.Document, 0, len(records))
	for _, rec := range records {
		doc, err := rec.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *documentStore) Create(ctx context.Context, owner, coll string, data collection.Fields) (collection.Document, error) {
	now := core.NowFunc().UnixNano()
	id := uuid.New().String()
	_, err := s.coll.InsertOne(ctx, bson.M{
		"_id":        id,
		"ownerId":    owner,
		"collection": coll,
		"data":       map[string]interface{}(data.WithoutReserved()),
		"createdAt":  now,
		"updatedAt":  now,
	})
	if err != nil {
		return collection.Document{}, errors.Wrap(err, "inserting document")
	}
	return s.get(ctx, owner, coll, id)
}

func (s *documentStore) get(ctx context.Context, owner, coll, id string) (collection.Document, error) {
	filter := append(scope(owner, coll), bson.E{Key: "_id", Value: id})
	var rec documentRecord
	if err := s.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return collection.Document{}, core.ErrItemNotFound
		}
		return collection.Document{}, errors.Wrap(err, "finding document")
	}
	return rec.document()
}

// Patch sets every field with a single atomic update.
func (s *documentStore) Patch(ctx context.Context, owner, coll, id string, fields collection.Fields) (collection.Document, error) {
	set := bson.M{"updatedAt": core.NowFunc().UnixNano()}
	for k, v := range fields.WithoutReserved() {
		set["data."+k] = v
	}

	filter := append(scope(owner, coll), bson.E{Key: "_id", Value: id})
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec documentRecord
	err := s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return collection.Document{}, core.ErrItemNotFound
		}
		return collection.Document{}, errors.Wrap(err, "updating document")
	}
	return rec.document()
}

func (s *documentStore) Remove(ctx context.Context, owner, coll, id string) error {
	filter := append(scope(owner, coll), bson.E{Key: "_id", Value: id})
	if _, err := s.coll.DeleteOne(ctx, filter); err != nil {
		return errors.Wrap(err, "deleting document")
	}
	return nil
}
