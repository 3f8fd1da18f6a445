package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/coursecatalog/internal/bootstrap"
	"github.com/yigit/coursecatalog/internal/config"
	"github.com/yigit/coursecatalog/internal/db"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	store  *db.Store
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	store, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return New(cfg, store, lgr), nil
}

// New builds a server around an already opened store.
func New(cfg *config.Config, store *db.Store, lgr zerolog.Logger) *Server {
	deps := bootstrap.BuildDependencies(store, lgr)
	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config: cfg,
		router: router,
		store:  store,
		logger: lgr,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout(),
			WriteTimeout: cfg.WriteTimeout(),
		},
	}
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts down.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		serverErrors <- s.http.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closeStore()
			return fmt.Errorf("error serving: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout())
	defer cancel()

	var shutdownErr error

	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		shutdownErr = err
	} else {
		s.logger.Info().Msg("HTTP server gracefully stopped.")
	}

	if err := s.closeStore(); err != nil {
		shutdownErr = errors.Join(shutdownErr, err)
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown completed with errors: %w", shutdownErr)
	}
	return nil
}

func (s *Server) closeStore() error {
	if s.store == nil {
		return nil
	}
	s.logger.Info().Msg("Closing database...")
	if err := s.store.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Database close error")
		return err
	}
	return nil
}
