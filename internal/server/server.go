package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conquergate/conquergate/internal/dependencies/clock"
	"github.com/conquergate/conquergate/internal/dependencies/random"
	"github.com/conquergate/conquergate/internal/gateway"
	"github.com/conquergate/conquergate/internal/services/account"
	"github.com/conquergate/conquergate/internal/services/promise"
	"github.com/conquergate/conquergate/internal/storage"
	"github.com/conquergate/conquergate/internal/world"
)

// Config holds top-level server configuration
type Config struct {
	Auth    gateway.AuthConfig
	Session gateway.SessionConfig
	Account account.Config
	Promise promise.Config

	// StatusPort serves the HTTP status endpoint; 0 disables it
	StatusPort int

	// RegionIDs are the world regions created at startup
	RegionIDs []uint32
}

// DefaultConfig returns the customary endpoints and a default world
func DefaultConfig() Config {
	return Config{
		Auth:       gateway.DefaultAuthConfig(),
		Session:    gateway.DefaultSessionConfig(),
		Account:    account.DefaultConfig(),
		Promise:    promise.DefaultConfig(),
		StatusPort: 0,
		RegionIDs:  world.DefaultRegionIDs,
	}
}

// Server owns the shared state both gateways work against: the account
// directory, the promise store bridging the handshake, and the world
// registry. Gateways receive these as injected handles, never through
// globals.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	accounts *account.Service
	promises *promise.Store
	registry *world.Registry
	auth     *gateway.AuthGateway
	session  *gateway.SessionGateway
	status   *statusServer
}

// New wires a server against the given storage backend
func New(store storage.Storage, clk clock.Clock, rnd random.Random, handlers gateway.Handlers, cfg Config, logger *slog.Logger) *Server {
	accounts := account.New(store, clk, cfg.Account, logger)
	promises := promise.NewStore(clk, rnd, cfg.Promise)
	registry := world.NewRegistry(cfg.RegionIDs, logger)

	s := &Server{
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "server")),
		accounts: accounts,
		promises: promises,
		registry: registry,
	}
	s.auth = gateway.NewAuthGateway(accounts, promises, cfg.Auth, logger)
	s.session = gateway.NewSessionGateway(accounts, promises, registry, handlers, cfg.Session, logger)
	if cfg.StatusPort > 0 {
		s.status = newStatusServer(s, cfg.StatusPort, clk, logger)
	}
	return s
}

// Start brings up the session gateway, then the auth gateway that
// redirects to it, then the status endpoint. A bind failure is fatal to
// the whole start.
func (s *Server) Start(ctx context.Context) error {
	if err := s.session.Start(ctx); err != nil {
		return fmt.Errorf("session gateway: %w", err)
	}
	if err := s.auth.Start(ctx); err != nil {
		_ = s.session.Close()
		return fmt.Errorf("auth gateway: %w", err)
	}
	if s.status != nil {
		if err := s.status.Start(); err != nil {
			_ = s.auth.Close()
			_ = s.session.Close()
			return fmt.Errorf("status server: %w", err)
		}
	}
	return nil
}

// Shutdown stops both listeners and the status endpoint. Connections in
// flight terminate when their sockets close.
func (s *Server) Shutdown(ctx context.Context) error {
	var first error
	if err := s.auth.Close(); err != nil && first == nil {
		first = err
	}
	if err := s.session.Close(); err != nil && first == nil {
		first = err
	}
	if s.status != nil {
		if err := s.status.Shutdown(ctx); err != nil && first == nil {
			first = err
		}
	}
	s.logger.Info("server stopped")
	return first
}

// Accounts returns the account directory
func (s *Server) Accounts() *account.Service {
	return s.accounts
}

// Promises returns the promise store
func (s *Server) Promises() *promise.Store {
	return s.promises
}

// Registry returns the world registry
func (s *Server) Registry() *world.Registry {
	return s.registry
}

// AuthGateway returns the auth gateway
func (s *Server) AuthGateway() *gateway.AuthGateway {
	return s.auth
}

// SessionGateway returns the session gateway
func (s *Server) SessionGateway() *gateway.SessionGateway {
	return s.session
}
