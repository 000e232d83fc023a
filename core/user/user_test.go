package user_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/user"
	inmemdb "github.com/trezcool/lifetrack/storage/database/inmem"
)

const pwd = "Tr1cky#Zebra42"

func newService() (*user.Service, *validator.Validate) {
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	repo := inmemdb.NewUserRepository(inmemdb.Open())
	return user.NewService(repo, nil, &core.Config{}), validate
}

func failedTag(err error) string {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		return vErrs[0].Tag()
	}
	return ""
}

func TestPasswordPolicy(t *testing.T) {
	_, validate := newService()

	tests := []struct {
		name    string
		pwd     string
		confirm string
		wantTag string
	}{
		{name: "valid", pwd: pwd, confirm: pwd},
		{name: "too short", pwd: "Ab1!", confirm: "Ab1!", wantTag: "pwdminlen"},
		{name: "whitespace", pwd: "Abc 12345!", confirm: "Abc 12345!", wantTag: "pwdnospace"},
		{name: "all numeric", pwd: "1234567890", confirm: "1234567890", wantTag: "pwdnotallnum"},
		{name: "not complex", pwd: "abcdefgh1", confirm: "abcdefgh1", wantTag: "pwdcplx"},
		{name: "similar to email", pwd: "Awe@test.cd1", confirm: "Awe@test.cd1", wantTag: "pwdtoosim"},
		{name: "common", pwd: "P@ssw0rd", confirm: "P@ssw0rd", wantTag: "pwdnocommon"},
		{name: "confirm mismatch", pwd: pwd, confirm: pwd + "x", wantTag: "eqfield"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(user.NewUser{
				Email:           "awe@test.cd",
				DisplayName:     "Awe",
				Password:        tt.pwd,
				PasswordConfirm: tt.confirm,
			})
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantTag, failedTag(err))
		})
	}
}

func TestService_RegisterAndAuthenticate(t *testing.T) {
	svc, validate := newService()
	ctx := context.Background()

	nu := user.NewUser{Email: " AWE@test.cd ", DisplayName: "Awe", Password: pwd, PasswordConfirm: pwd}
	if !assert.NoError(t, nu.Validate(ctx, validate, svc)) {
		return
	}
	usr, err := svc.Register(ctx, nu)
	if !assert.NoError(t, err) {
		return
	}
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "awe@test.cd", usr.Email)
	assert.True(t, usr.IsActive)

	// email taken
	dup := user.NewUser{Email: "awe@test.cd", Password: pwd, PasswordConfirm: pwd}
	err = dup.Validate(ctx, validate, svc)
	assert.Equal(t, core.KindValidation, core.KindOf(err))

	tests := []struct {
		name    string
		email   string
		pwd     string
		wantErr error
	}{
		{name: "ok", email: "Awe@Test.cd", pwd: pwd},
		{name: "wrong password", email: "awe@test.cd", pwd: "nope", wantErr: user.ErrAuthFailed},
		{name: "unknown email", email: "who@test.cd", pwd: pwd, wantErr: user.ErrAuthFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(ctx, tt.email, tt.pwd)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, usr.ID, got.ID)
			assert.False(t, got.LastLogin.IsZero())
		})
	}
}

func TestService_ResetPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, user.NewUser{Email: "awe@test.cd", Password: pwd, PasswordConfirm: pwd})
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, user.ErrNotFound, svc.ResetPassword(ctx, "who@test.cd", "Zebra#Tr1cky42"))

	assert.NoError(t, svc.ResetPassword(ctx, " awe@test.cd", "Zebra#Tr1cky42"))
	_, err = svc.Authenticate(ctx, "awe@test.cd", pwd)
	assert.Equal(t, user.ErrAuthFailed, err)
	_, err = svc.Authenticate(ctx, "awe@test.cd", "Zebra#Tr1cky42")
	assert.NoError(t, err)
}
