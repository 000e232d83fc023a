package sqlxdb

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core/user"
)

type userRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	DisplayName  string `db:"display_name"`
	PhotoURL     string `db:"photo_url"`
	PasswordHash string `db:"password_hash"`
	IsActive     bool   `db:"is_active"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
	LastLogin    int64  `db:"last_login"`
}

func toNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func newUserRow(usr user.User) userRow {
	return userRow{
		ID:           usr.ID,
		Email:        usr.Email,
		DisplayName:  usr.DisplayName,
		PhotoURL:     usr.PhotoURL,
		PasswordHash: string(usr.PasswordHash),
		IsActive:     usr.IsActive,
		CreatedAt:    toNano(usr.CreatedAt),
		UpdatedAt:    toNano(usr.UpdatedAt),
		LastLogin:    toNano(usr.LastLogin),
	}
}

func (r userRow) user() user.User {
	return user.User{
		ID:           r.ID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		PhotoURL:     r.PhotoURL,
		PasswordHash: []byte(r.PasswordHash),
		IsActive:     r.IsActive,
		CreatedAt:    fromNano(r.CreatedAt),
		UpdatedAt:    fromNano(r.UpdatedAt),
		LastLogin:    fromNano(r.LastLogin),
	}
}

const userColumns = "id, email, display_name, photo_url, password_hash, is_active, created_at, updated_at, last_login"

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	q := "SELECT COUNT(*) FROM users WHERE email = ?"
	args := []interface{}{email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		var err error
		q, args, err = sqlx.In(q+" AND id NOT IN (?)", email, ids)
		if err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.CheckEmailUniqueness(ctx, usr.Email); err != nil {
		return user.User{}, err
	}
	usr.ID = uuid.New().String()
	row := newUserRow(usr)

	q := repo.db.Rebind("INSERT INTO users (" + userColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err := repo.db.ExecContext(ctx, q,
		row.ID, row.Email, row.DisplayName, row.PhotoURL, row.PasswordHash, row.IsActive,
		row.CreatedAt, row.UpdatedAt, row.LastLogin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return row.user(), nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var (
		row userRow
		q   = "SELECT " + userColumns + " FROM users WHERE "
		arg string
	)
	switch {
	case filter.ID != "":
		q, arg = q+"id = ?", filter.ID
	case filter.Email != "":
		q, arg = q+"email = ?", filter.Email
	default:
		return user.User{}, user.ErrNotFound
	}

	if err := repo.db.GetContext(ctx, &row, repo.db.Rebind(q), arg); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "selecting user")
	}
	return row.user(), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := newUserRow(usr)
	q := repo.db.Rebind(`UPDATE users SET email = ?, display_name = ?, photo_url = ?, password_hash = ?,
		is_active = ?, updated_at = ?, last_login = ? WHERE id = ?`)
	res, err := repo.db.ExecContext(ctx, q,
		row.Email, row.DisplayName, row.PhotoURL, row.PasswordHash,
		row.IsActive, row.UpdatedAt, row.LastLogin, row.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// mysql reports 0 for unchanged rows
		if _, err := repo.GetUser(ctx, user.GetFilter{ID: usr.ID}); err != nil {
			return user.User{}, err
		}
	}
	return usr, nil
}

// isUniqueViolation matches the unique constraint errors of the supported drivers.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
