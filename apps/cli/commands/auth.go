package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/lifetrack/apps/cli/printers"
	"github.com/trezcool/lifetrack/core/session"
	"github.com/trezcool/lifetrack/core/user"
)

var readPasswordFunc = term.ReadPassword // mockable

func (app *App) readPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(app.opts.Out, prompt)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(app.opts.Out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (app *App) signIn(usr user.User, token string) error {
	return app.sess.SignIn(session.Session{
		UID:         usr.ID,
		Email:       usr.Email,
		DisplayName: usr.DisplayName,
		PhotoURL:    usr.PhotoURL,
		Token:       token,
	})
}

func addAuth(topLevel *cobra.Command, app *App) {
	var email, name string

	register := &cobra.Command{
		Use:   "register --email EMAIL [--name NAME]",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pwd, err := app.readPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := app.readPassword("Confirm password: ")
			if err != nil {
				return err
			}

			nu := user.NewUser{Email: email, DisplayName: name, Password: pwd, PasswordConfirm: confirm}
			if _, err := app.client.Register(ctx, nu); err != nil {
				return app.HandleError(err)
			}
			res, err := app.client.Login(ctx, nu.Email, pwd)
			if err != nil {
				return app.HandleError(err)
			}
			if err := app.signIn(res.User, res.Token); err != nil {
				return err
			}
			app.pp.Message("Welcome %s! You are signed in.", displayName(res.User))
			return nil
		},
	}
	register.Flags().StringVarP(&email, "email", "e", "", "email address")
	register.Flags().StringVarP(&name, "name", "n", "", "display name")
	_ = register.MarkFlagRequired("email")

	var loginEmail string
	login := &cobra.Command{
		Use:   "login [--email EMAIL]",
		Short: "Sign in; the session is kept until logout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginEmail == "" {
				_, _ = fmt.Fprint(app.opts.Out, "Email: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return err
				}
				loginEmail = strings.TrimSpace(line)
			}
			pwd, err := app.readPassword("Password: ")
			if err != nil {
				return err
			}
			res, err := app.client.Login(context.Background(), loginEmail, pwd)
			if err != nil {
				return app.HandleError(err)
			}
			if err := app.signIn(res.User, res.Token); err != nil {
				return err
			}
			app.pp.Message("Signed in as %s.", displayName(res.User))
			return nil
		},
	}
	login.Flags().StringVarP(&loginEmail, "email", "e", "", "email address")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.sess.SignOut(); err != nil {
				return err
			}
			app.pp.Message("Signed out.")
			return nil
		},
	}

	var check bool
	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.sess.Current()
			if s.IsZero() {
				_, _ = color.New(color.Faint).Fprintln(app.opts.Out, "not signed in")
				return nil
			}
			if check {
				usr, err := app.client.Me(context.Background())
				if err != nil {
					return app.HandleError(err)
				}
				s.DisplayName, s.Email = usr.DisplayName, usr.Email
			}
			app.pp.Stats("Signed in",
				printers.Stat{Label: "Name", Value: s.DisplayName},
				printers.Stat{Label: "Email", Value: s.Email},
				printers.Stat{Label: "ID", Value: s.UID},
			)
			return nil
		},
	}
	whoami.Flags().BoolVar(&check, "check", false, "verify the session against the API")

	topLevel.AddCommand(register, login, logout, whoami)
}

func displayName(usr user.User) string {
	if usr.DisplayName != "" {
		return usr.DisplayName
	}
	return usr.Email
}
