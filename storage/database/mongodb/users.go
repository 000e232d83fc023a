package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trezcool/lifetrack/core/user"
)

type userRecord struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	DisplayName  string    `bson:"displayName"`
	PhotoURL     string    `bson:"photoURL"`
	IsActive     bool      `bson:"isActive"`
	PasswordHash []byte    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
	LastLogin    time.Time `bson:"lastLogin"`
}

func newUserRecord(usr user.User) userRecord {
	return userRecord(usr)
}

func (r userRecord) user() user.User {
	usr := user.User(r)
	usr.CreatedAt = usr.CreatedAt.UTC()
	usr.UpdatedAt = usr.UpdatedAt.UTC()
	usr.LastLogin = usr.LastLogin.UTC()
	return usr
}

type userRepository struct {
	coll *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	filter := bson.M{"email": email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		filter["_id"] = bson.M{"$nin": ids}
	}
	n, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if n > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	if _, err := repo.coll.InsertOne(ctx, newUserRecord(usr)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var q bson.M
	switch {
	case filter.ID != "":
		q = bson.M{"_id": filter.ID}
	case filter.Email != "":
		q = bson.M{"email": filter.Email}
	default:
		return user.User{}, user.ErrNotFound
	}

	var rec userRecord
	if err := repo.coll.FindOne(ctx, q).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user")
	}
	return rec.user(), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": usr.ID}, newUserRecord(usr))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if res.MatchedCount == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
