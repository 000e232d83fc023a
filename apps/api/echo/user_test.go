package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/trezcool/lifetrack/apps/api/echo"
	"github.com/trezcool/lifetrack/core/user"
	testutil "github.com/trezcool/lifetrack/tests"
)

func Test_userApi_register(t *testing.T) {
	app := setup(t)
	testutil.CreateUser(t, app.usrRepo, "Taken", "taken@test.cd", strongPwd, true)

	register := func(email, pwd, confirm string) []byte {
		return []byte(`{"email": "` + email + `", "display_name": "Ann", "password": "` + pwd + `", "password_confirm": "` + confirm + `"}`)
	}

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"error": {"email": "this field is required", "password": "this field is required", "password_confirm": "this field is required"}}`),
		},
		{
			name: "email taken", body: register("TAKEN@test.cd", strongPwd, strongPwd), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"error": {"email": "a user with this email already exists"}}`),
		},
		{
			name: "short password", body: register("ann@test.cd", "Ab1#", "Ab1#"), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"error": {"password": "password must contain at least 8 characters"}}`),
		},
		{
			name: "too simple", body: register("ann@test.cd", "abcdefgh1", "abcdefgh1"), wantCode: http.StatusBadRequest,
		},
		{name: "ok", body: register(" Ann@Test.cd", strongPwd, strongPwd), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method = http.MethodPost
			tt.path = "/v1/users/register"
			rec := app.do(tt)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusCreated {
				var usr user.User
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
				assert.NotEmpty(t, usr.ID)
				assert.Equal(t, "ann@test.cd", usr.Email)
				assert.True(t, usr.IsActive)
				assert.NotContains(t, rec.Body.String(), "password")

				sent := app.mailSvc.SentMessages()
				if assert.Len(t, sent, 1) {
					assert.Equal(t, "ann@test.cd", sent[0].To[0].Address)
				}
			}
		})
	}
}

func Test_userApi_login(t *testing.T) {
	app := setup(t)
	usr := testutil.CreateUser(t, app.usrRepo, "Ann", "ann@test.cd", strongPwd, true)
	testutil.CreateUser(t, app.usrRepo, "Old", "old@test.cd", strongPwd, false)

	login := func(email, pwd string) []byte {
		return []byte(`{"email": "` + email + `", "password": "` + pwd + `"}`)
	}

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"error": {"email": "this field is required", "password": "this field is required"}}`),
		},
		{
			name: "unknown email", body: login("nobody@test.cd", strongPwd), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: login("ann@test.cd", "nope"), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated", body: login("old@test.cd", strongPwd), wantCode: http.StatusForbidden,
			wantData: marshallObj(t, httpErr{Error: "account deactivated"}),
		},
		{name: "ok", body: login("ANN@test.cd", strongPwd), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method = http.MethodPost
			tt.path = "/v1/users/login"
			rec := app.do(tt)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusOK {
				var res echoapi.LoginResponse
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
				assert.NotEmpty(t, res.Token)
				assert.Equal(t, int64(3600), res.ExpiresIn)
				assert.Equal(t, usr.ID, res.User.ID)
				assert.False(t, res.User.LastLogin.IsZero())

				// the token opens the authed endpoints
				me := app.do(httpTest{path: "/v1/users/me", token: res.Token})
				assert.Equal(t, http.StatusOK, me.Code)
			}
		})
	}
}

func Test_userApi_me(t *testing.T) {
	app := setup(t)
	usr := testutil.CreateUser(t, app.usrRepo, "Ann", "ann@test.cd", strongPwd, true)
	old := testutil.CreateUser(t, app.usrRepo, "Old", "old@test.cd", strongPwd, false)
	ghost := user.User{ID: "ghost", Email: "ghost@test.cd"}

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "bad token", token: "not.a.jwt", wantCode: http.StatusUnauthorized},
		{name: "unknown user", token: getToken(t, app, ghost), wantCode: http.StatusUnauthorized},
		{
			name: "deactivated", token: getToken(t, app, old), wantCode: http.StatusForbidden,
			wantData: marshallObj(t, httpErr{Error: "account deactivated"}),
		},
		{name: "ok", token: getToken(t, app, usr), wantCode: http.StatusOK, wantData: marshallObj(t, usr)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.path = "/v1/users/me"
			checkCodeAndData(t, tt, app.do(tt))
		})
	}
}
