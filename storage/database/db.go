package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/lifetrack/core"
)

// Supported engines; the SQL ones are served by this package.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
	MySQL    = "mysql"
	MongoDB  = "mongodb"
	InMem    = "inmem"
)

// MigrationsDir is the directory of the embedded goose migrations.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var migrations embed.FS

var gooseDialects = map[string]string{
	Postgres: "postgres",
	SQLite:   "sqlite3",
	MySQL:    "mysql",
}

// IsSQL reports whether engine is served by this package.
func IsSQL(engine string) bool {
	_, ok := gooseDialects[engine]
	return ok
}

func dsn(dbName string, admin bool, conf *core.Config) (string, error) {
	dbConf := conf.Database
	usr, pwd := dbConf.User, dbConf.Password
	if admin && dbConf.AdminUser != "" {
		usr, pwd = dbConf.AdminUser, dbConf.AdminPassword
	}

	switch dbConf.Engine {
	case Postgres:
		sslMode := "require"
		if dbConf.DisableTLS {
			sslMode = "disable"
		}
		q := make(url.Values)
		q.Set("sslmode", sslMode)
		q.Set("timezone", "utc")

		u := url.URL{
			Scheme:   Postgres,
			User:     url.UserPassword(usr, pwd),
			Host:     dbConf.Address(),
			Path:     dbName,
			RawQuery: q.Encode(),
		}
		return u.String(), nil

	case MySQL:
		mc := mysql.NewConfig()
		mc.User = usr
		mc.Passwd = pwd
		mc.Net = "tcp"
		mc.Addr = dbConf.Address()
		mc.DBName = dbName
		if !dbConf.DisableTLS {
			mc.TLSConfig = "true"
		}
		return mc.FormatDSN(), nil

	case SQLite:
		path := dbConf.Path
		if path == "" {
			path = dbName + ".db"
		}
		return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil

	default:
		return "", errors.Errorf("unsupported database engine %q", dbConf.Engine)
	}
}

func open(dbName string, admin bool, conf *core.Config) (*sqlx.DB, error) {
	source, err := dsn(dbName, admin, conf)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(conf.Database.Engine, source)
	if err != nil {
		return nil, err
	}
	if conf.Database.Engine == SQLite {
		// one writer at a time; also keeps a `:memory:` database alive across calls
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Open connects to the configured SQL database and waits for it to be ready.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := open(conf.Database.Name, false, conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err := ping(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var pingMaxAttempts = 30

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	for attempts := 1; attempts <= pingMaxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func exists(db *sqlx.DB, query, name string) (bool, error) {
	var found []bool
	if err := db.Select(&found, db.Rebind(query), name); err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

func createAppUser(db *sqlx.DB, conf *core.Config) error {
	if conf.Database.User == "" || conf.Database.User == conf.Database.AdminUser {
		return nil
	}

	found, err := exists(db, "SELECT true FROM pg_roles WHERE rolname = ?", conf.Database.User)
	if err != nil {
		return errors.Wrap(err, "checking app user")
	}
	if !found {
		// identifiers and passwords cannot be bound parameters here
		q := fmt.Sprintf("CREATE USER %q CREATEDB ENCRYPTED PASSWORD '%s'", conf.Database.User, conf.Database.Password)
		if _, err = db.Exec(q); err != nil {
			return errors.Wrap(err, "creating app user")
		}
	}
	return nil
}

func createDB(db *sqlx.DB, conf *core.Config) error {
	found, err := exists(db, "SELECT true FROM pg_database WHERE datname = ?", conf.Database.Name)
	if err != nil {
		return errors.Wrap(err, "checking DB")
	}
	if !found {
		if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", conf.Database.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// CreateIfNotExist creates the app role and database on postgres. Other engines create
// their database on first connection (sqlite) or are provisioned by the operator (mysql).
func CreateIfNotExist(conf *core.Config) error {
	if conf.Database.Engine != Postgres {
		return nil
	}

	// connect as admin
	db, err := open("postgres", true, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()
	if err = ping(db.DB); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	if err = createAppUser(db, conf); err != nil {
		return err
	}

	// create DB as app user
	appDB, err := open("postgres", false, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = appDB.Close() }()
	return createDB(appDB, conf)
}

// PrepareMigrations points goose at the embedded migrations for engine.
func PrepareMigrations(engine string) error {
	dialect, ok := gooseDialects[engine]
	if !ok {
		return errors.Errorf("unsupported database engine %q", engine)
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "setting migrations dialect")
	}
	return nil
}

// Migrate applies every pending migration.
func Migrate(db *sql.DB, engine string) error {
	if err := PrepareMigrations(engine); err != nil {
		return err
	}
	if err := goose.Up(db, MigrationsDir); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
