// Package sessionstore persists the CLI session on disk with diskv.
package sessionstore

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core/session"
)

const sessionKey = "session"

type store struct {
	d *diskv.Diskv
}

var _ session.Store = (*store)(nil)

// New returns a session.Store keeping a single JSON file under dir (`~` is expanded).
func New(dir string) (session.Store, error) {
	basePath, err := homedir.Expand(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %s", dir)
	}
	return &store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 64 * 1024,
		FilePerm:     0600,
		PathPerm:     0700,
	})}, nil
}

func (s *store) Load() (session.Session, error) {
	if !s.d.Has(sessionKey) {
		return session.Session{}, session.ErrNoSession
	}
	b, err := s.d.Read(sessionKey)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "reading session")
	}
	var sess session.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return session.Session{}, errors.Wrap(err, "decoding session")
	}
	return sess, nil
}

func (s *store) Save(sess session.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.d.Write(sessionKey, b)
}

func (s *store) Clear() error {
	if err := s.d.Erase(sessionKey); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "erasing session")
	}
	return nil
}
