package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	directiveHTTP "aegnt-unltd/internal/directive/delivery/http"
	"aegnt-unltd/internal/middleware"
	"aegnt-unltd/internal/model"
	"aegnt-unltd/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment model.Environment
	mw          middleware.Middleware

	// Directive domain
	directiveHandler directiveHTTP.Handler

	// Observability
	metricsHandler http.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string
	Middleware  middleware.Middleware

	DirectiveHandler directiveHTTP.Handler

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                logger,
		gin:              gin.New(),
		port:             cfg.Port,
		mode:             cfg.Mode,
		environment:      model.ParseEnvironment(cfg.Environment),
		mw:               cfg.Middleware,
		directiveHandler: cfg.DirectiveHandler,
		metricsHandler:   cfg.MetricsHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()

	return srv, nil
}

// Handler exposes the routed engine, mainly for tests.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.directiveHandler == nil {
		return errors.New("directive handler is required")
	}
	return nil
}
