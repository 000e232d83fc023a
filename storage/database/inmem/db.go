package inmemdb

import (
	"sync"

	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/user"
)

type (
	// DB is a mutex guarded in-memory database, used in tests and local development.
	DB struct {
		docs *docTable
		user *userTable
	}

	docTable struct {
		seq   int64
		rows  map[string]*docRow // {id: row}
		mutex sync.RWMutex
	}

	docRow struct {
		id         string
		seq        int64
		owner      string
		collection string
		data       collection.Fields
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		docs: &docTable{rows: make(map[string]*docRow)},
		user: &userTable{table: make(map[string]*user.User)},
	}
}

// Reset wipes every table.
func (db *DB) Reset() {
	db.docs.mutex.Lock()
	db.docs.rows = make(map[string]*docRow)
	db.docs.seq = 0
	db.docs.mutex.Unlock()

	db.user.mutex.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.mutex.Unlock()
}
