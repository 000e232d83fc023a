package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	echoapi "github.com/trezcool/lifetrack/apps/api/echo"
	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/user"
	emailsvc "github.com/trezcool/lifetrack/services/email"
	mediasvc "github.com/trezcool/lifetrack/services/media"
	inmemdb "github.com/trezcool/lifetrack/storage/database/inmem"
	testutil "github.com/trezcool/lifetrack/tests"
)

const strongPwd = "Tr1cky#Zebra42"

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	server  *echoapi.Server
	auth    *echoapi.Auth
	usrRepo user.Repository
	mailSvc *emailsvc.ConsoleServiceMock
}

func setup(t *testing.T) testApp {
	conf := testutil.Config()

	// set up DB & repos
	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)

	// set up services
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	files := mediasvc.NewLocalStore(t.TempDir(), conf.Media.BaseURL)

	// set up server
	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:           conf,
		Logger:         core.NopLogger(),
		DisableReqLogs: true,
		Validate:       validate,
		Translator:     translator,
		UserSvc:        user.NewService(usrRepo, mailSvc, conf),
		Store:          inmemdb.NewDocumentStore(db),
		Uploader:       files,
		MediaReader:    files,
	})
	return testApp{server: server, auth: echoapi.NewAuth(conf), usrRepo: usrRepo, mailSvc: mailSvc}
}

type httpErr struct {
	Error interface{} `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func (app testApp) do(tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	app.server.ServeHTTP(rec, req)
	return rec
}

func getToken(t *testing.T, app testApp, usr user.User) string {
	token, err := app.auth.Token(usr)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
