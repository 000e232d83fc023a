package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/session"
	"github.com/trezcool/lifetrack/core/user"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Debug: true, Env: "TEST"})

	args := []interface{}{
		errors.New("boom"),
		map[string]interface{}{"coll": "todos"},
		user.User{ID: "u1", Email: "a@b.co"},
		session.Session{UID: "u2"},
	}
	prepared := l.prepare("refetch failed", args)
	assert.Equal(t, []interface{}{"refetch failed", args[0], args[1]}, prepared, "identities are not reported as data")

	l.Warn("refetch failed", args...)
	assert.Equal(t, "WARN: refetch failed\n\tboom\n\tmap[coll:todos]\n", buf.String())
}
