package echoapi_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	testutil "github.com/trezcool/lifetrack/tests"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newUploadRequest(t *testing.T, token, field, filename string, data []byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("CreateFormFile() failed: %v", err)
		}
		_, _ = part.Write(data)
	}
	_ = w.WriteField("note", "x")
	if err := w.Close(); err != nil {
		t.Fatalf("multipart.Close() failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/media", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func Test_mediaApi(t *testing.T) {
	app := setup(t)
	usr := testutil.CreateUser(t, app.usrRepo, "Ann", "ann@test.cd", "", true)
	token := getToken(t, app, usr)

	tests := []struct {
		name     string
		token    string
		field    string
		filename string
		data     []byte
		wantCode int
	}{
		{name: "auth required", field: "file", filename: "a.png", data: pngHeader, wantCode: http.StatusUnauthorized},
		{name: "file required", token: token, wantCode: http.StatusBadRequest},
		{name: "not an image", token: token, field: "file", filename: "a.png", data: []byte("hello world"), wantCode: http.StatusUnsupportedMediaType},
		{
			name: "too large", token: token, field: "file", filename: "big.png",
			data: append(append([]byte{}, pngHeader...), make([]byte, 5<<20)...), wantCode: http.StatusRequestEntityTooLarge,
		},
		{name: "ok", token: token, field: "file", filename: "cat.png", data: pngHeader, wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newUploadRequest(t, tt.token, tt.field, tt.filename, tt.data)
			app.server.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if rec.Code != http.StatusCreated {
				return
			}

			var res struct{ URL string }
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.True(t, strings.HasPrefix(res.URL, "http://media.test/media/"), res.URL)

			// served back without auth
			get := app.do(httpTest{path: strings.TrimPrefix(res.URL, "http://media.test")})
			assert.Equal(t, http.StatusOK, get.Code)
			assert.Equal(t, "image/png", get.Header().Get("Content-Type"))
			assert.Equal(t, pngHeader, get.Body.Bytes())
		})
	}

	rec := app.do(httpTest{path: "/media/00000000-0000-0000-0000-000000000000.png"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
