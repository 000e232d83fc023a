package remote

import (
	"context"
	"net/http"

	"github.com/trezcool/lifetrack/core/user"
)

// LoginResult is the payload of a successful sign-in.
type LoginResult struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.doJSON(ctx, http.MethodPost, "/v1/users/login", user.LoginUser{Email: email, Password: password}, &res)
	return res, err
}

func (c *Client) Register(ctx context.Context, nu user.NewUser) (user.User, error) {
	var usr user.User
	err := c.doJSON(ctx, http.MethodPost, "/v1/users/register", nu, &usr)
	return usr, err
}

// Me returns the user of the current token.
func (c *Client) Me(ctx context.Context) (user.User, error) {
	var usr user.User
	err := c.doJSON(ctx, http.MethodGet, "/v1/users/me", nil, &usr)
	return usr, err
}
