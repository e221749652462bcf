package gateway

import (
	"context"
	"log/slog"
	"net"

	"github.com/conquergate/conquergate/internal/protocol"
	"github.com/conquergate/conquergate/internal/services/account"
	"github.com/conquergate/conquergate/internal/services/promise"
)

// AuthConfig holds configuration for the authentication gateway
type AuthConfig struct {
	// Port the auth gateway listens on
	Port int
	// RedirectAddr is the public address of the session gateway, sent to
	// clients in the login forward reply
	RedirectAddr string
	// RedirectPort is the session gateway's port
	RedirectPort int
}

// DefaultAuthConfig returns the protocol's customary endpoints
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		Port:         9958,
		RedirectAddr: "127.000.000.001",
		RedirectPort: 5816,
	}
}

// AuthGateway accepts credential logins, issues authorization promises,
// and redirects clients to the session gateway.
type AuthGateway struct {
	accounts *account.Service
	promises *promise.Store
	cfg      AuthConfig
	logger   *slog.Logger

	ln net.Listener
}

// NewAuthGateway creates an auth gateway
func NewAuthGateway(accounts *account.Service, promises *promise.Store, cfg AuthConfig, logger *slog.Logger) *AuthGateway {
	return &AuthGateway{
		accounts: accounts,
		promises: promises,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "auth_gateway")),
	}
}

// Start binds the listener and begins accepting connections
func (g *AuthGateway) Start(ctx context.Context) error {
	ln, err := listen(g.cfg.Port)
	if err != nil {
		return err
	}
	g.ln = ln
	g.logger.Info("authentication gateway listening", slog.Int("port", g.cfg.Port))

	go serve(ctx, ln, g, g.logger)
	return nil
}

// Addr returns the bound listener address
func (g *AuthGateway) Addr() net.Addr {
	return g.ln.Addr()
}

// Close stops the listener
func (g *AuthGateway) Close() error {
	if g.ln == nil {
		return nil
	}
	return g.ln.Close()
}

// Connected implements the connection lifecycle hook
func (g *AuthGateway) Connected(c *Conn) {
	g.logger.Debug("client connected", slog.String("session", c.Session().String()))
}

// Disconnected implements the connection lifecycle hook
func (g *AuthGateway) Disconnected(c *Conn) {
	g.logger.Debug("client disconnected", slog.String("session", c.Session().String()))
}

// Handle dispatches one inbound packet
func (g *AuthGateway) Handle(ctx context.Context, c *Conn, p protocol.Packet) error {
	switch p.Type() {
	case protocol.Account:
		return g.handleLogin(ctx, c, p)
	case protocol.Connect:
		// Informational echo from some clients, no state change
		g.logger.Info("login response",
			slog.Uint64("identity", uint64(p.Uint32(4))),
			slog.Uint64("number", uint64(p.Uint32(8))),
			slog.String("location", p.String(12, 16)))
		return nil
	default:
		g.logger.Info("unimplemented packet", slog.String("packet", p.Type().String()))
		return nil
	}
}

// handleLogin checks credentials and, on success, issues a promise and
// replies with the session gateway redirect. A failed login sends no
// reply: the client times out, as the classic server behaved.
func (g *AuthGateway) handleLogin(ctx context.Context, c *Conn, p protocol.Packet) error {
	accountName := p.String(4, 16)
	password := p.Password()
	serverName := p.String(36, 16)

	if !g.accounts.Authorize(ctx, serverName, accountName, password) {
		g.logger.Warn("login rejected",
			slog.String("account", accountName),
			slog.String("server", serverName))
		return nil
	}

	identity, err := g.accounts.Identity(ctx, accountName)
	if err != nil {
		return err
	}

	pr := g.promises.Issue(identity, g.accounts.HasCharacter(ctx, identity))
	g.logger.Info("login accepted",
		slog.String("account", accountName),
		slog.Uint64("identity", identity))

	reply := protocol.NewConnectEx(pr.Identity, pr.Token, g.cfg.RedirectAddr, uint32(g.cfg.RedirectPort))
	return c.Send(reply)
}
