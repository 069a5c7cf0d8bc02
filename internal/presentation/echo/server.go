package echo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	echofw "github.com/labstack/echo/v4"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/use_cases"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/utils/config"
)

type Server struct {
	echo   *echofw.Echo
	config *config.Config
	logger *slog.Logger
}

func NewServer(cfg *config.Config, container *use_cases.Container, logger *slog.Logger) *Server {
	return &Server{
		echo:   NewRouter(container, logger),
		config: cfg,
		logger: logger,
	}
}

// Start serves until SIGINT or SIGTERM, then shuts down within the
// configured grace period. The returned channel closes after shutdown.
func (s *Server) Start() <-chan error {
	errC := make(chan error, 1)

	go func() {
		if err := s.echo.Start(":" + s.config.AppPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
		<-quit

		s.logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), s.config.GracefulTimeout)
		defer cancel()

		if err := s.echo.Shutdown(ctx); err != nil {
			errC <- err
		}
		close(errC)
	}()

	s.logger.Info("server started", "port", s.config.AppPort)
	return errC
}
