// Package session holds the signed-in user's identity for the client side commands.
package session

import (
	"sync"

	"github.com/pkg/errors"
)

var ErrNoSession = errors.New("not signed in")

// Session is the identity persisted between runs.
type Session struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Token       string `json:"token"`
}

func (s Session) IsZero() bool { return s.UID == "" }

// Store is the single serialization boundary of a Session.
// Load returns ErrNoSession when nothing was saved.
type Store interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}

// Context is loaded once at startup and passed to whatever needs the current user.
// Every change is saved through the Store immediately.
type Context struct {
	store Store

	mu      sync.RWMutex
	current Session
}

func NewContext(store Store) *Context {
	return &Context{store: store}
}

// Load rehydrates the session from the store; a missing session leaves c signed out.
func (c *Context) Load() error {
	s, err := c.store.Load()
	if err != nil && !errors.Is(err, ErrNoSession) {
		return errors.Wrap(err, "loading session")
	}
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
	return nil
}

func (c *Context) Current() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Require returns the current session, or ErrNoSession when signed out.
func (c *Context) Require() (Session, error) {
	s := c.Current()
	if s.IsZero() {
		return Session{}, ErrNoSession
	}
	return s, nil
}

func (c *Context) SignIn(s Session) error {
	if err := c.store.Save(s); err != nil {
		return errors.Wrap(err, "saving session")
	}
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
	return nil
}

// SignOut clears the session entirely, in memory and in the store.
func (c *Context) SignOut() error {
	if err := c.store.Clear(); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	c.mu.Lock()
	c.current = Session{}
	c.mu.Unlock()
	return nil
}
