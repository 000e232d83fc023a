package session_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core/session"
)

type memStore struct {
	saved   *session.Session
	failing bool
}

func (m *memStore) Load() (session.Session, error) {
	if m.saved == nil {
		return session.Session{}, session.ErrNoSession
	}
	return *m.saved, nil
}

func (m *memStore) Save(s session.Session) error {
	if m.failing {
		return errors.New("disk full")
	}
	m.saved = &s
	return nil
}

func (m *memStore) Clear() error {
	m.saved = nil
	return nil
}

func TestContext(t *testing.T) {
	store := &memStore{}
	ctx := session.NewContext(store)

	assert.NoError(t, ctx.Load())
	_, err := ctx.Require()
	assert.Equal(t, session.ErrNoSession, err)

	s := session.Session{UID: "u1", Email: "a@b.co", DisplayName: "Ann", Token: "tok"}
	assert.NoError(t, ctx.SignIn(s))
	got, err := ctx.Require()
	assert.NoError(t, err)
	assert.Equal(t, s, got)

	// a new process sees the same session
	other := session.NewContext(store)
	assert.NoError(t, other.Load())
	assert.Equal(t, s, other.Current())

	store.failing = true
	assert.Error(t, ctx.SignIn(session.Session{UID: "u2"}))
	assert.Equal(t, s, ctx.Current(), "failed save keeps the previous session")

	assert.NoError(t, ctx.SignOut())
	assert.True(t, ctx.Current().IsZero())
	assert.Nil(t, store.saved)
}
