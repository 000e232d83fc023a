package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/lifetrack/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	engine  string
	db      *sql.DB // nil on non SQL engines
	usrRepo user.Repository
	usrSvc  *user.Service
	out     io.Writer
}

func (cli *commandLine) readPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "LifeTrack operator commands",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(&cobra.Command{
		Use:                "migrate COMMAND [ARGS...]",
		Short:              "run a goose migration command (up, down, status, up-to VERSION...)",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.migrate(args)
		},
	})

	var resetEmail string
	resetCmd := &cobra.Command{
		Use:   "resetpassword --email EMAIL",
		Short: "reset a user's password; the new password is prompted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resetEmail == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.readPassword("Enter password:")
			if err != nil {
				return err
			}
			if pwd == "" {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.resetPassword(resetEmail, pwd)
		},
	}
	resetCmd.Flags().StringVarP(&resetEmail, "email", "e", "", "the user's email")
	root.AddCommand(resetCmd)

	var (
		addEmail, addName string
		addInactive       bool
	)
	addCmd := &cobra.Command{
		Use:   "adduser --email EMAIL [--name NAME]",
		Short: "create or update a user; the password is prompted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addEmail == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.readPassword("Enter password:")
			if err != nil {
				return err
			}
			if pwd == "" {
				_ = cmd.Usage()
				return errHelp
			}
			usr, err := cli.addUser(addEmail, addName, pwd, !addInactive)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cli.out, "user %s (%s) saved\n", usr.Email, usr.ID)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&addEmail, "email", "e", "", "the user's email")
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "the user's display name")
	addCmd.Flags().BoolVar(&addInactive, "inactive", false, "create the user deactivated")
	root.AddCommand(addCmd)

	return root
}

// run executes args (program name first).
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	return root.Execute()
}
