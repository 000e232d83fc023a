package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/media"
	"github.com/trezcool/lifetrack/core/user"
)

type (
	// MediaReader serves back locally stored uploads.
	MediaReader interface {
		Read(key string) ([]byte, string, error)
	}

	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool
		Validate       *validator.Validate
		Translator     ut.Translator
		UserSvc        *user.Service
		Store          collection.Store
		Uploader       media.Uploader
		MediaReader    MediaReader // nil: GET /media/:key is not served
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		auth     *Auth
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		auth:     NewAuth(deps.Conf),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.BodyLimit(bodyLimit(conf.Server.MaxUploadSize)))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	authed := []echo.MiddlewareFunc{s.auth.Middleware(), activeUserMiddleware(s.deps.UserSvc)}

	registerUserAPI(v1, authed, s.auth, s.deps.UserSvc, s.deps.Validate)
	registerCollectionAPI(v1, authed, s.deps.Store)
	registerMediaAPI(s.app, v1, authed, s.deps.Uploader, s.deps.MediaReader)
}

// bodyLimit leaves room for the multipart envelope of the largest accepted upload.
func bodyLimit(maxUpload int64) string {
	if maxUpload <= 0 {
		maxUpload = media.MaxSize
	}
	return fmt.Sprintf("%dK", maxUpload>>10+512)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}

// Start blocks serving requests. Startup failures are reported on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error { return s.app.Shutdown(ctx) }

func (s *Server) Close() error { return s.app.Close() }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
