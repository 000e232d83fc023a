package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	echoapi "github.com/trezcool/lifetrack/apps/api/echo"
	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/expense"
	"github.com/trezcool/lifetrack/core/session"
	"github.com/trezcool/lifetrack/core/user"
	mediasvc "github.com/trezcool/lifetrack/services/media"
	inmemdb "github.com/trezcool/lifetrack/storage/database/inmem"
	"github.com/trezcool/lifetrack/storage/remote"
	"github.com/trezcool/lifetrack/storage/sessionstore"
	testutil "github.com/trezcool/lifetrack/tests"
)

const strongPwd = "Tr1cky#Zebra42"

var now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	dir    string
	apiURL string
}

// setup starts an API on an in-memory store and points a fresh config dir at it.
func setup(t *testing.T) testEnv {
	color.NoColor = true
	conf := testutil.Config()

	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	files := mediasvc.NewLocalStore(t.TempDir(), conf.Media.BaseURL)

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:           conf,
		Logger:         core.NopLogger(),
		DisableReqLogs: true,
		Validate:       validate,
		Translator:     translator,
		UserSvc:        user.NewService(usrRepo, nil, conf),
		Store:          inmemdb.NewDocumentStore(db),
		Uploader:       files,
		MediaReader:    files,
	})
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := []byte("api_url: " + srv.URL + "\ntimeout: 5s\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), cfg, 0600); err != nil {
		t.Fatal(err)
	}

	orig := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(strongPwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })

	return testEnv{dir: dir, apiURL: srv.URL}
}

func (env testEnv) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := New(Options{Out: &out, Err: &out, Logger: core.NopLogger(), Now: func() time.Time { return now }})
	cmd.SetArgs(append([]string{"--dir=" + env.dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (env testEnv) session(t *testing.T) session.Session {
	st, err := sessionstore.New(env.dir)
	if err != nil {
		t.Fatal(err)
	}
	s, err := st.Load()
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return s
}

// docs lists a sub-collection of the signed in user straight from the API.
func (env testEnv) docs(t *testing.T, coll string) []collection.Document {
	s := env.session(t)
	docs, err := remote.New(env.apiURL, 5*time.Second).WithToken(s.Token).List(context.Background(), s.UID, coll)
	if err != nil {
		t.Fatalf("listing %s: %v", coll, err)
	}
	return docs
}

func (env testEnv) register(t *testing.T) {
	out, err := env.run("register", "--email", "ann@test.cd", "--name", "Ann")
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	assert.Contains(t, out, "Welcome Ann!")
}

func TestAuth(t *testing.T) {
	env := setup(t)

	out, err := env.run("whoami")
	assert.NoError(t, err)
	assert.Contains(t, out, "not signed in")

	_, err = env.run("todo", "list")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "lifetrack login")
	}

	env.register(t)
	out, err = env.run("whoami", "--check")
	assert.NoError(t, err)
	assert.Contains(t, out, "ann@test.cd")
	assert.Contains(t, out, "Ann")

	_, err = env.run("logout")
	assert.NoError(t, err)
	out, _ = env.run("whoami")
	assert.Contains(t, out, "not signed in")

	out, err = env.run("login", "--email", "ANN@test.cd")
	assert.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ann.")

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("wrong"), nil }
	_, err = env.run("login", "--email", "ann@test.cd")
	assert.Error(t, err)
	assert.Equal(t, "ann@test.cd", env.session(t).Email, "a failed login keeps the session")
}

func TestExpiredSession(t *testing.T) {
	env := setup(t)
	st, _ := sessionstore.New(env.dir)
	if err := st.Save(session.Session{UID: "u1", Email: "old@test.cd", Token: "stale"}); err != nil {
		t.Fatal(err)
	}

	_, err := env.run("todo", "list")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "lifetrack login")
	}
	assert.Equal(t, "stale", env.session(t).Token, "the session is left for the user to renew")
}

func TestTodoCommands(t *testing.T) {
	env := setup(t)
	env.register(t)

	out, err := env.run("todo", "add", "Buy milk", "-d", "2 bottles")
	assert.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "1 item")

	docs := env.docs(t, collection.Todos)
	if !assert.Len(t, docs, 1) {
		return
	}
	id := docs[0].ID

	_, err = env.run("todo", "edit", id, "--title", "Buy oat milk")
	assert.NoError(t, err)
	_, err = env.run("todo", "toggle", id)
	assert.NoError(t, err)

	docs = env.docs(t, collection.Todos)
	assert.Equal(t, "Buy oat milk", docs[0].Data["title"])
	assert.Equal(t, "2 bottles", docs[0].Data["description"], "unchanged flags keep their value")
	assert.Equal(t, true, docs[0].Data["completed"])

	out, err = env.run("todo", "list", "--status", "pending")
	assert.NoError(t, err)
	assert.Contains(t, out, "0 items")

	_, err = env.run("todo", "add", "  ")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "title")
	}

	_, err = env.run("todo", "toggle", "nope")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "no such item")
	}

	_, err = env.run("todo", "delete", id)
	assert.NoError(t, err)
	assert.Empty(t, env.docs(t, collection.Todos))
}

func TestNoteImages(t *testing.T) {
	env := setup(t)
	env.register(t)

	dir := t.TempDir()
	png := filepath.Join(dir, "pic.png")
	txt := filepath.Join(dir, "notes.txt")
	_ = os.WriteFile(png, append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...), 0600)
	_ = os.WriteFile(txt, []byte("just text"), 0600)

	out, err := env.run("note", "add", "Trip", "--content", "beach", "--image", png, "--image", txt)
	assert.NoError(t, err, "a failed attachment does not block the note")
	assert.Contains(t, out, "image not attached")

	docs := env.docs(t, collection.DailyNotes)
	if !assert.Len(t, docs, 1) {
		return
	}
	images, _ := docs[0].Data["images"].([]interface{})
	if assert.Len(t, images, 1) {
		assert.Contains(t, images[0], "http://media.test/media/")
	}

	_, err = env.run("note", "edit", docs[0].ID, "--remove-image", "0")
	assert.NoError(t, err)
	docs = env.docs(t, collection.DailyNotes)
	images, _ = docs[0].Data["images"].([]interface{})
	assert.Empty(t, images)
	assert.Equal(t, "Trip", docs[0].Data["title"])
}

func TestScheduleCommands(t *testing.T) {
	env := setup(t)
	env.register(t)

	_, err := env.run("schedule", "add", "Gym", "--day", "1", "--slot", "8")
	assert.NoError(t, err)

	_, err = env.run("schedule", "add", "Study", "--day", "1", "--slot", "8")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "this time slot is already taken")
	}
	assert.Len(t, env.docs(t, collection.WeeklySchedule), 1)

	out, err := env.run("schedule", "grid")
	assert.NoError(t, err)
	assert.Contains(t, out, "Gym")
	assert.NotContains(t, out, "Study")

	_, err = env.run("schedule", "add", "Study", "--day", "1", "--slot", "9")
	assert.NoError(t, err)
	out, err = env.run("schedule", "stats")
	assert.NoError(t, err)
	assert.Contains(t, out, "Total")
}

func TestExpenseCommands(t *testing.T) {
	env := setup(t)
	env.register(t)

	_, err := env.run("expense", "add", "Lunch", "50")
	assert.NoError(t, err)
	_, err = env.run("expense", "add", "Bus", "10", "--category", expense.Categories[1])
	assert.NoError(t, err)

	_, err = env.run("expense", "add", "Coffee", "abc")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "amount must be a number")
	}

	out, err := env.run("expense", "stats")
	assert.NoError(t, err)
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "50.00 (83.3%)")
	assert.Contains(t, out, "10.00 (16.7%)")

	out, err = env.run("expense", "list", "--type", expense.Categories[1])
	assert.NoError(t, err)
	assert.Contains(t, out, "Bus")
	assert.NotContains(t, out, "Lunch")
}
