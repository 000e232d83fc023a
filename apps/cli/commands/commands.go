// Package commands is the lifetrack command line client: one command group per module,
// all running the core services against the API through storage/remote.
package commands

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/lifetrack/apps/cli/printers"
	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/expense"
	"github.com/trezcool/lifetrack/core/habit"
	"github.com/trezcool/lifetrack/core/note"
	"github.com/trezcool/lifetrack/core/reminder"
	"github.com/trezcool/lifetrack/core/schedule"
	"github.com/trezcool/lifetrack/core/session"
	"github.com/trezcool/lifetrack/core/shopping"
	"github.com/trezcool/lifetrack/core/todo"
	"github.com/trezcool/lifetrack/core/user"
	logsvc "github.com/trezcool/lifetrack/services/logger"
	"github.com/trezcool/lifetrack/storage/remote"
	"github.com/trezcool/lifetrack/storage/sessionstore"
)

// Options tune a command tree; zero values are fine for the real binary.
type Options struct {
	Out    io.Writer
	Err    io.Writer
	Logger core.Logger
	Now    func() time.Time
}

// App is the state shared by the commands of one invocation.
type App struct {
	opts   Options
	dir    string
	showID bool

	conf       Config
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
	sess       *session.Context
	client     *remote.Client
	pp         *printers.PrettyPrint
}

func New(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = core.NowFunc
	}
	app := &App{opts: opts}

	cmd := &cobra.Command{
		Use:           "lifetrack",
		Short:         "Personal productivity on the command line: to-dos, notes, shopping, habits, reminders, expenses and a weekly schedule.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(opts.Out)
	cmd.SetErr(opts.Err)
	cmd.PersistentFlags().StringVar(&app.dir, "dir", DefaultDir, "directory holding config.yaml and the session")
	cmd.PersistentFlags().BoolVar(&app.showID, "show-id", false, "show item ids in listings")

	AddCommands(cmd, app)
	return cmd
}

func AddCommands(topLevel *cobra.Command, app *App) {
	addAuth(topLevel, app)
	addTodo(topLevel, app)
	addNote(topLevel, app)
	addShopping(topLevel, app)
	addHabit(topLevel, app)
	addReminder(topLevel, app)
	addExpense(topLevel, app)
	addSchedule(topLevel, app)
}

func (app *App) init() error {
	conf, err := LoadConfig(app.dir)
	if err != nil {
		return err
	}
	app.conf = conf

	app.logger = app.opts.Logger
	if app.logger == nil {
		app.logger = logsvc.NewRollbarLogger(log.New(app.opts.Err, "", 0), &core.Config{
			AppName:      "lifetrack",
			Env:          conf.Env,
			RollbarToken: conf.RollbarToken,
		})
	}

	st, err := sessionstore.New(conf.Dir)
	if err != nil {
		return err
	}
	app.sess = session.NewContext(st)
	if err := app.sess.Load(); err != nil {
		return err
	}

	app.validate, app.translator = core.NewValidator()
	user.InitValidators(app.validate, app.translator)
	shopping.InitValidators(app.validate, app.translator)
	habit.InitValidators(app.validate, app.translator)
	reminder.InitValidators(app.validate, app.translator)
	expense.InitValidators(app.validate, app.translator)
	schedule.InitValidators(app.validate, app.translator)

	app.client = remote.New(conf.APIURL, conf.Timeout).WithToken(app.sess.Current().Token)
	app.pp = &printers.PrettyPrint{Out: app.opts.Out, ShowID: app.showID}
	return nil
}

// owner returns the uid of the signed in user.
func (app *App) owner() (string, error) {
	s, err := app.sess.Require()
	if err != nil {
		return "", errors.Wrap(core.ErrUnauthenticated, err.Error())
	}
	return s.UID, nil
}

func (app *App) now() time.Time { return app.opts.Now() }

func (app *App) clock() collection.Option { return collection.WithClock(app.opts.Now) }

func (app *App) todos() *todo.Service {
	return todo.NewService(app.client, app.validate, app.logger, app.clock())
}

func (app *App) notes() *note.Service {
	return note.NewService(app.client, app.client, app.validate, app.logger, app.clock())
}

func (app *App) shopping() *shopping.Service {
	return shopping.NewService(app.client, app.client, app.validate, app.logger, app.clock())
}

func (app *App) habits() *habit.Service {
	return habit.NewService(app.client, app.validate, app.logger, app.clock())
}

func (app *App) reminders() *reminder.Service {
	return reminder.NewService(app.client, app.validate, app.logger, app.clock())
}

func (app *App) expenses() *expense.Service {
	return expense.NewService(app.client, app.validate, app.logger, app.clock())
}

func (app *App) schedule() *schedule.Service {
	return schedule.NewService(app.client, app.validate, app.logger, app.clock())
}

// HandleError turns err into the message shown to the user.
func (app *App) HandleError(err error) error {
	if err == nil {
		return nil
	}
	if app.translator != nil {
		err = core.TranslateValidationError(err, app.translator)
	}
	switch core.KindOf(err) {
	case core.KindUnauthenticated:
		return errors.New("not signed in or session expired, run `lifetrack login` first")
	case core.KindStoreUnavailable:
		return errors.Errorf("could not reach LifeTrack at %s, try again later (%v)", app.conf.APIURL, err)
	case core.KindItemNotFound:
		return errors.New("no such item, use --show-id to list the ids")
	case core.KindValidation:
		var vErr *core.ValidationError
		if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
			msg := vErr.Error()
			for _, f := range vErr.Fields {
				msg += fmt.Sprintf("\n  %s: %s", f.Field, f.Error)
			}
			return errors.New(msg)
		}
	}
	return err
}
