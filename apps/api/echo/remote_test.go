package echoapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/media"
	"github.com/trezcool/lifetrack/core/schedule"
	"github.com/trezcool/lifetrack/core/todo"
	"github.com/trezcool/lifetrack/core/user"
	"github.com/trezcool/lifetrack/storage/remote"
)

// The client side services run unchanged against the API through storage/remote.
func TestRemoteClient(t *testing.T) {
	app := setup(t)
	srv := httptest.NewServer(app.server)
	defer srv.Close()
	ctx := context.Background()

	client := remote.New(srv.URL, 5*time.Second)

	_, err := client.Me(ctx)
	assert.Equal(t, remote.ErrUnauthorized, err)

	_, err = client.Register(ctx, user.NewUser{Email: "ann@test.cd", Password: "short", PasswordConfirm: "short"})
	if assert.Equal(t, core.KindValidation, core.KindOf(err)) {
		vErr := err.(*core.ValidationError)
		assert.Equal(t, []core.FieldError{{Field: "password", Error: "password must contain at least 8 characters"}}, vErr.Fields)
	}

	usr, err := client.Register(ctx, user.NewUser{Email: "ann@test.cd", DisplayName: "Ann", Password: strongPwd, PasswordConfirm: strongPwd})
	assert.NoError(t, err)

	_, err = client.Login(ctx, "ann@test.cd", "wrong")
	assert.Equal(t, core.KindValidation, core.KindOf(err))

	res, err := client.Login(ctx, "ann@test.cd", strongPwd)
	assert.NoError(t, err)
	assert.Equal(t, usr.ID, res.User.ID)

	authed := client.WithToken(res.Token)
	me, err := authed.Me(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Ann", me.DisplayName)

	validate, translator := core.NewValidator()
	schedule.InitValidators(validate, translator)

	// todos
	todos := todo.NewService(authed, validate, core.NopLogger())
	items, err := todos.Add(ctx, usr.ID, todo.Input{Title: "Buy milk"})
	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, usr.ID, items[0].OwnerID)
		assert.False(t, items[0].CreatedAt.IsZero())
	}
	items, err = todos.ToggleCompleted(ctx, usr.ID, items[0].ID)
	assert.NoError(t, err)
	assert.True(t, items[0].Completed)

	_, err = todos.Edit(ctx, usr.ID, "nope", todo.Input{Title: "x"})
	assert.Equal(t, core.KindItemNotFound, core.KindOf(err))

	items, err = todos.Delete(ctx, usr.ID, items[0].ID)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// schedule collisions are checked client side
	sched := schedule.NewService(authed, validate, core.NopLogger())
	_, err = sched.Add(ctx, usr.ID, schedule.EntryInput{Task: "Gym", Day: "السبت", TimeSlot: `8\9`})
	assert.NoError(t, err)
	_, err = sched.Add(ctx, usr.ID, schedule.EntryInput{Task: "Study", Day: "السبت", TimeSlot: "8:00 ص - 9:00 ص"})
	assert.Equal(t, core.KindValidation, core.KindOf(err))
	grid, err := sched.Grid(ctx, usr.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, grid.Len())

	// media
	url, err := media.Upload(ctx, authed, media.File{Name: "cat.png", Data: pngHeader})
	assert.NoError(t, err)
	assert.Contains(t, url, "/media/")

	_, err = authed.Upload(ctx, media.File{Name: "notes.txt", Data: []byte("plain text")})
	assert.Equal(t, core.KindValidation, core.KindOf(err))

	// a stale token is rejected
	_, err = client.WithToken("expired").Me(ctx)
	assert.Equal(t, remote.ErrUnauthorized, err)
}
