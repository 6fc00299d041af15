package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"user-directory-web/cmd/web/di"
	"user-directory-web/internal/config"

	"go.uber.org/zap"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: SetupGinServer(
			c.UserHandler,
			c.Renderer,
			c.RateLimiter,
			cfg.Logger.ServiceName,
			httpAddress(cfg),
			l,
		),
	}
}

// Start listens and serves until the server is shut down
func (s *Server) Start() error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(context.Background(), "tcp", s.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.Logger.Info("web server running", zap.String("address", lis.Addr().String()))

	if err := s.HTTP.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}

// httpAddress returns the web server address
func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.HTTPPort
}
