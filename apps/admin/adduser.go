package main

import (
	"context"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/user"
)

// addUser updates or creates the user.User with email.
func (cli *commandLine) addUser(email, name, pwd string, isActive bool) (user.User, error) {
	ctx := context.Background()
	now := core.NowFunc().UTC()
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Email: email})
	if err != nil {
		if err != user.ErrNotFound {
			return user.User{}, err
		}
		usr = user.User{Email: email, CreatedAt: now}
	}
	if name = core.CleanString(name); name != "" {
		usr.DisplayName = name
	}
	usr.IsActive = isActive
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return user.User{}, err
	}

	if usr.ID == "" {
		return cli.usrRepo.CreateUser(ctx, usr)
	}
	return cli.usrRepo.UpdateUser(ctx, usr)
}
