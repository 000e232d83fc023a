package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/user"
	emailsvc "github.com/trezcool/lifetrack/services/email"
	logsvc "github.com/trezcool/lifetrack/services/logger"
	"github.com/trezcool/lifetrack/storage/database"
	"github.com/trezcool/lifetrack/storage/database/mongodb"
	"github.com/trezcool/lifetrack/storage/database/sqlxdb"
)

const mongoTimeout = 10 * time.Second

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	cli, closeDB, err := newCommandLine(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up %s database: %v", conf.Database.Engine, err), err)
	}

	err = cli.run(os.Args)
	if cErr := closeDB(); cErr != nil {
		logger.Error("closing database", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("\nerror: %s\n", err), err)
		}
		os.Exit(1)
	}
}

// newCommandLine connects to the configured database without migrating it.
func newCommandLine(conf *core.Config, logger core.Logger) (*commandLine, func() error, error) {
	cli := &commandLine{engine: conf.Database.Engine, out: os.Stdout}

	var closeDB func() error
	switch engine := conf.Database.Engine; {
	case database.IsSQL(engine):
		db, err := database.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		cli.db = db.DB
		cli.usrRepo = sqlxdb.NewUserRepository(db)
		closeDB = db.Close

	case engine == database.MongoDB:
		ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
		defer cancel()
		db, err := mongodb.Open(ctx, conf)
		if err != nil {
			return nil, nil, err
		}
		cli.usrRepo = mongodb.NewUserRepository(db)
		closeDB = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
			defer cancel()
			return mongodb.Close(ctx, db)
		}

	default:
		return nil, nil, errors.Errorf("%q has no persistent users to administer", engine)
	}

	cli.usrSvc = user.NewService(cli.usrRepo, emailsvc.New(conf, logger), conf)
	return cli, closeDB, nil
}
