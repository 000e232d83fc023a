package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/user"
)

// Runs against a live server only: LIFETRACK_TEST_MONGO_URI=mongodb://localhost:27017
func TestMongoStores(t *testing.T) {
	uri := os.Getenv("LIFETRACK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("LIFETRACK_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	conf := &core.Config{Database: core.DatabaseConfig{
		MongoURI: uri,
		Name:     fmt.Sprintf("lifetrack_test_%d", time.Now().UnixNano()),
	}}
	db, err := Open(ctx, conf)
	if !assert.NoError(t, err) {
		return
	}
	defer func() {
		_ = db.Drop(ctx)
		_ = Close(ctx, db)
	}()

	t.Run("documents", func(t *testing.T) {
		store := NewDocumentStore(db)
		a, err := store.Create(ctx, "u1", collection.Expenses, collection.Fields{"name": "Lunch", "amount": 50.5, "tags": []interface{}{"x"}})
		assert.NoError(t, err)
		b, err := store.Create(ctx, "u1", collection.Expenses, collection.Fields{"name": "Bus", "amount": 10})
		assert.NoError(t, err)

		docs, err := store.List(ctx, "u1", collection.Expenses)
		assert.NoError(t, err)
		if assert.Len(t, docs, 2) {
			assert.Equal(t, a.ID, docs[0].ID)
			assert.Equal(t, 50.5, docs[0].Data["amount"])
			assert.Equal(t, []interface{}{"x"}, docs[0].Data["tags"])
		}

		doc, err := store.Patch(ctx, "u1", collection.Expenses, b.ID, collection.Fields{"amount": 12, "notes": nil})
		assert.NoError(t, err)
		assert.Equal(t, "Bus", doc.Data["name"])
		assert.EqualValues(t, 12, doc.Data["amount"])

		_, err = store.Patch(ctx, "u2", collection.Expenses, b.ID, collection.Fields{"amount": 1})
		assert.Equal(t, core.KindItemNotFound, core.KindOf(err))

		assert.NoError(t, store.Remove(ctx, "u1", collection.Expenses, a.ID))
		assert.NoError(t, store.Remove(ctx, "u1", collection.Expenses, a.ID))
		docs, _ = store.List(ctx, "u1", collection.Expenses)
		assert.Len(t, docs, 1)
	})

	t.Run("users", func(t *testing.T) {
		repo := NewUserRepository(db)
		usr, err := repo.CreateUser(ctx, user.User{Email: "ann@mail.co", IsActive: true, PasswordHash: []byte("h")})
		assert.NoError(t, err)
		_, err = repo.CreateUser(ctx, user.User{Email: "ann@mail.co"})
		assert.Equal(t, user.ErrEmailExists, err)
		assert.NoError(t, repo.CheckEmailUniqueness(ctx, "ann@mail.co", usr))

		got, err := repo.GetUser(ctx, user.GetFilter{Email: "ann@mail.co"})
		assert.NoError(t, err)
		assert.Equal(t, usr.ID, got.ID)

		_, err = repo.UpdateUser(ctx, user.User{ID: "missing"})
		assert.Equal(t, user.ErrNotFound, err)
	})
}
