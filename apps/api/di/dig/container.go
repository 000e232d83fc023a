package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/lifetrack/apps/api/echo"
	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/media"
	"github.com/trezcool/lifetrack/core/user"
	emailsvc "github.com/trezcool/lifetrack/services/email"
	logsvc "github.com/trezcool/lifetrack/services/logger"
	mediasvc "github.com/trezcool/lifetrack/services/media"
	"github.com/trezcool/lifetrack/storage/database"
	inmemdb "github.com/trezcool/lifetrack/storage/database/inmem"
	"github.com/trezcool/lifetrack/storage/database/mongodb"
	"github.com/trezcool/lifetrack/storage/database/sqlxdb"
)

const mongoTimeout = 10 * time.Second

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// Storage holds the store and repository of the configured database engine.
type Storage struct {
	Store collection.Store
	Users user.Repository
	Close func() error
}

type serverParams struct {
	dig.In

	Conf       *core.Config
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	UserSvc    *user.Service
	Storage    Storage
	Uploader   media.Uploader
	Files      *mediasvc.LocalStore
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStorage(conf *core.Config, loggerParam DBLoggerParam) Storage {
	st, err := openStorage(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up %s database: %v", conf.Database.Engine, err), err)
	}
	loggerParam.Logger.Info(fmt.Sprintf("using %s", conf.Database))
	return st
}

func openStorage(conf *core.Config) (Storage, error) {
	engine := conf.Database.Engine
	switch {
	case database.IsSQL(engine):
		if err := database.CreateIfNotExist(conf); err != nil {
			return Storage{}, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return Storage{}, err
		}
		if err = database.Migrate(db.DB, engine); err != nil {
			_ = db.Close()
			return Storage{}, err
		}
		return Storage{Store: sqlxdb.NewDocumentStore(db), Users: sqlxdb.NewUserRepository(db), Close: db.Close}, nil

	case engine == database.MongoDB:
		ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
		defer cancel()
		db, err := mongodb.Open(ctx, conf)
		if err != nil {
			return Storage{}, err
		}
		closeFn := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
			defer cancel()
			return mongodb.Close(ctx, db)
		}
		return Storage{Store: mongodb.NewDocumentStore(db), Users: mongodb.NewUserRepository(db), Close: closeFn}, nil

	case engine == database.InMem:
		db := inmemdb.Open()
		return Storage{Store: inmemdb.NewDocumentStore(db), Users: inmemdb.NewUserRepository(db), Close: func() error { return nil }}, nil
	}
	return Storage{}, errors.Errorf("unknown database engine %q", engine)
}

func newUserRepository(st Storage) user.Repository { return st.Users }

func newValidator() (*validator.Validate, ut.Translator) {
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	return validate, translator
}

func newMedia(conf *core.Config) (media.Uploader, *mediasvc.LocalStore) {
	return mediasvc.New(conf)
}

func newServer(p serverParams) *echoapi.Server {
	deps := echoapi.ServerDeps{
		Conf:       p.Conf,
		Logger:     p.Logger,
		Validate:   p.Validate,
		Translator: p.Translator,
		UserSvc:    p.UserSvc,
		Store:      p.Storage.Store,
		Uploader:   p.Uploader,
	}
	if p.Files != nil {
		deps.MediaReader = p.Files
	}
	return echoapi.NewServer(deps)
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(newUserRepository))
	must(c.Provide(emailsvc.New))
	must(c.Provide(newValidator))
	must(c.Provide(newMedia))
	must(c.Provide(user.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
