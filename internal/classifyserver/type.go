// Package classifyserver is a thin HTTP front end over the
// classification pipeline: it decodes JSON-encoded bitmaps, runs them
// through pkg/pattern, pkg/classify and pkg/multipage, and returns the
// resulting tags. Grounded on the teacher's internal/spaserver (same
// echo.Echo wiring, same zap4echo logging/recovery middleware), with
// the barcode-generation route replaced by the classification routes
// this module actually needs.
package classifyserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mechiko/bilevelmatch/internal/zap4echo"
	"go.uber.org/zap"
)

const (
	_defaultAddr            = "127.0.0.1:8888"
	_defaultShutdownTimeout = 5 * time.Second
)

// Server wraps an echo.Echo instance serving the classification API.
type Server struct {
	server          *echo.Echo
	addr            string
	notify          chan error
	shutdownTimeout time.Duration
}

// New builds a Server bound to host:port (falling back to
// _defaultAddr when port is empty) and registers the classification
// routes. log receives both request logs and recovered panics; a nil
// log is replaced with a no-op logger.
func New(host, port string, log *zap.Logger) (*Server, error) {
	addr := fmt.Sprintf("%s:%s", host, port)
	if port == "" {
		addr = _defaultAddr
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.Logger.SetOutput(io.Discard)

	e.Use(
		zap4echo.Logger(log),
		zap4echo.Recover(log),
	)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
	}))

	s := &Server{
		server:          e,
		addr:            addr,
		notify:          make(chan error, 1),
		shutdownTimeout: _defaultShutdownTimeout,
	}

	if err := s.Routes(); err != nil {
		return nil, fmt.Errorf("classifyserver: new routes: %w", err)
	}
	return s, nil
}

// Start serves in a background goroutine; errors (including the
// expected http.ErrServerClosed) surface on Notify.
func (s *Server) Start() {
	go func() {
		s.notify <- s.server.Start(s.addr)
		close(s.notify)
	}()
}

func (s *Server) Notify() <-chan error {
	return s.notify
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) Echo() *echo.Echo {
	return s.server
}
