package sessionstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core/session"
)

func TestStore(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	if !assert.NoError(t, err) {
		return
	}

	_, err = st.Load()
	assert.Equal(t, session.ErrNoSession, err)

	sess := session.Session{UID: "u1", Email: "ann@mail.co", DisplayName: "Ann", PhotoURL: "https://x/y.png", Token: "jwt"}
	assert.NoError(t, st.Save(sess))

	// fresh instance reads from disk, not from the diskv cache
	st2, _ := New(dir)
	got, err := st2.Load()
	assert.NoError(t, err)
	assert.Equal(t, sess, got)

	assert.NoError(t, st2.Clear())
	assert.NoError(t, st2.Clear(), "clearing twice is fine")
	_, err = st2.Load()
	assert.Equal(t, session.ErrNoSession, err)
}
