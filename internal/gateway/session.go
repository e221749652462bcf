package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync/atomic"

	"github.com/conquergate/conquergate/internal/model"
	"github.com/conquergate/conquergate/internal/protocol"
	"github.com/conquergate/conquergate/internal/services/account"
	"github.com/conquergate/conquergate/internal/services/promise"
	"github.com/conquergate/conquergate/internal/world"
)

// SessionConfig holds configuration for the session gateway
type SessionConfig struct {
	// Port the session gateway listens on
	Port int
}

// DefaultSessionConfig returns the protocol's customary endpoint
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{Port: 5816}
}

// SessionGateway completes the handshake begun at the auth gateway and
// runs the steady-state packet dispatch for connected players.
type SessionGateway struct {
	accounts *account.Service
	promises *promise.Store
	registry *world.Registry
	handlers Handlers
	cfg      SessionConfig
	logger   *slog.Logger

	players atomic.Int64
	ln      net.Listener
}

// NewSessionGateway creates a session gateway
func NewSessionGateway(
	accounts *account.Service,
	promises *promise.Store,
	registry *world.Registry,
	handlers Handlers,
	cfg SessionConfig,
	logger *slog.Logger,
) *SessionGateway {
	logger = logger.With(slog.String("component", "session_gateway"))
	return &SessionGateway{
		accounts: accounts,
		promises: promises,
		registry: registry,
		handlers: handlers.withDefaults(logger),
		cfg:      cfg,
		logger:   logger,
	}
}

// Start binds the listener and begins accepting connections
func (g *SessionGateway) Start(ctx context.Context) error {
	ln, err := listen(g.cfg.Port)
	if err != nil {
		return err
	}
	g.ln = ln
	g.logger.Info("session gateway listening", slog.Int("port", g.cfg.Port))

	go serve(ctx, ln, g, g.logger)
	return nil
}

// Addr returns the bound listener address
func (g *SessionGateway) Addr() net.Addr {
	return g.ln.Addr()
}

// Close stops the listener
func (g *SessionGateway) Close() error {
	if g.ln == nil {
		return nil
	}
	return g.ln.Close()
}

// PlayerCount returns the number of live session connections. Reads may
// be stale; the counter is informational.
func (g *SessionGateway) PlayerCount() int {
	return int(g.players.Load())
}

// Connected implements the connection lifecycle hook
func (g *SessionGateway) Connected(c *Conn) {
	n := g.players.Add(1)
	g.logger.Info("player connected",
		slog.String("session", c.Session().String()),
		slog.Int64("online", n))
}

// Disconnected runs the connection's cleanup: drop the counter, then
// detach the bound player from its region so peers get the remove
// broadcast. The Conn guarantees this runs exactly once.
func (g *SessionGateway) Disconnected(c *Conn) {
	n := g.players.Add(-1)
	g.logger.Info("player disconnected",
		slog.String("session", c.Session().String()),
		slog.Int64("online", n))

	p := c.Player()
	if p == nil {
		return
	}
	region, err := g.registry.RegionFor(p)
	if err != nil {
		g.logger.Error("disconnect cleanup failed",
			slog.Uint64("identity", p.Identity()),
			slog.String("error", err.Error()))
		return
	}
	region.Remove(p)
}

// Handle dispatches one inbound packet through the session state machine
func (g *SessionGateway) Handle(ctx context.Context, c *Conn, p protocol.Packet) error {
	switch p.Type() {
	case protocol.Connect:
		if c.State() != Unauthenticated {
			g.logIgnored(c, p)
			return nil
		}
		return g.handleConnect(ctx, c, p)
	case protocol.Register:
		return g.handleRegister(ctx, c, p)
	case protocol.Walk:
		if c.State() != InWorld {
			g.logIgnored(c, p)
			return nil
		}
		return g.handleWalk(c, p)
	case protocol.Talk:
		if c.State() != InWorld {
			g.logIgnored(c, p)
			return nil
		}
		return g.handleTalk(ctx, c, p)
	case protocol.Action:
		if c.State() != InWorld {
			g.logIgnored(c, p)
			return nil
		}
		return g.handlers.Action.Handle(ctx, c, p)
	case protocol.Item:
		if c.State() != InWorld {
			g.logIgnored(c, p)
			return nil
		}
		return g.handlers.Item.Handle(ctx, c, p)
	case protocol.Interact:
		if c.State() != InWorld {
			g.logIgnored(c, p)
			return nil
		}
		return g.handlers.Interact.Handle(ctx, c, p)
	default:
		g.logger.Info("unimplemented packet",
			slog.String("packet", p.Type().String()),
			slog.String("state", c.State().String()))
		return nil
	}
}

func (g *SessionGateway) logIgnored(c *Conn, p protocol.Packet) {
	g.logger.Info("packet ignored in state",
		slog.String("packet", p.Type().String()),
		slog.String("state", c.State().String()))
}

// handleConnect redeems the promise, installs the cipher, and either
// binds the player into the world or asks for character creation. A
// failed redemption closes the connection: no unbound session may reach
// the world.
func (g *SessionGateway) handleConnect(ctx context.Context, c *Conn, p protocol.Packet) error {
	identity := uint64(p.Uint32(4))
	token := p.Uint32(8)

	pr, err := g.promises.Redeem(identity, token)
	if err != nil {
		return fmt.Errorf("redeem identity %d: %w", identity, err)
	}

	c.installCipher(token, identity)
	c.identity.Store(identity)

	if !pr.HasCharacter {
		c.setState(Authenticated)
		g.logger.Info("handshake complete, no character",
			slog.Uint64("identity", identity))
		return c.Send(protocol.NewSystemNotice(protocol.ChatLoginInfo, protocol.NewRole))
	}

	player, err := g.accounts.LoadPlayer(ctx, pr)
	if err != nil {
		return fmt.Errorf("load player %d: %w", identity, err)
	}
	c.bindPlayer(player)

	if err := c.Send(protocol.NewSystemNotice(protocol.ChatLoginInfo, protocol.AnswerOK)); err != nil {
		return err
	}
	if err := c.Send(protocol.NewUserInfo(player)); err != nil {
		return err
	}

	region, err := g.registry.RegionFor(player)
	if err != nil {
		return fmt.Errorf("place player %d: %w", identity, err)
	}
	region.Add(player)

	c.setState(InWorld)
	g.logger.Info("player entered world",
		slog.Uint64("identity", identity),
		slog.String("name", player.Name()),
		slog.Uint64("region", uint64(region.ID())))
	return nil
}

// handleRegister creates the account's character. Success sends the
// confirmation notice and then closes the connection once it is on the
// wire: the client reconnects through a fresh handshake to play.
func (g *SessionGateway) handleRegister(ctx context.Context, c *Conn, p protocol.Packet) error {
	if c.State() != Authenticated {
		g.logIgnored(c, p)
		return nil
	}

	details := account.CreationDetails{
		Identity:  c.Identity(),
		Name:      p.String(4, 16),
		Body:      p.Uint32(20),
		Class:     p.Uint16(24),
		HairStyle: p.Uint16(26),
	}

	err := g.accounts.CreateCharacter(ctx, details)
	if err == nil {
		g.logger.Info("character created",
			slog.Uint64("identity", details.Identity),
			slog.String("name", details.Name))
		return c.SendFinal(protocol.NewSystemNotice(protocol.ChatLoginInfo, protocol.AnswerOK))
	}

	if errors.Is(err, model.ErrNameTaken) {
		return c.Send(protocol.NewSystemNotice(protocol.ChatDialog,
			"Failed to create character. Character name already in use."))
	}
	return err
}

// handleWalk echoes the raw movement frame to every player in range,
// mover included, before the mover's own location mutates, so peers see
// the step from its pre-update position.
func (g *SessionGateway) handleWalk(c *Conn, p protocol.Packet) error {
	player := c.Player()
	region, err := g.registry.RegionFor(player)
	if err != nil {
		return err
	}

	for _, peer := range region.PlayersInRange(player, true) {
		if err := peer.Send(p); err != nil {
			g.logger.Warn("movement broadcast failed",
				slog.Uint64("mover", player.Identity()),
				slog.Uint64("peer", peer.Identity()),
				slog.String("error", err.Error()))
		}
	}

	player.Walk(model.Direction(p.Byte(8)))
	return nil
}

// handleTalk routes "/"-prefixed messages to the command dispatcher and
// logs ambient chat.
func (g *SessionGateway) handleTalk(ctx context.Context, c *Conn, p protocol.Packet) error {
	msg := protocol.ParseTalk(p)
	if strings.HasPrefix(msg.Message, "/") {
		return g.handlers.Command.Dispatch(ctx, c, msg)
	}

	g.logger.Info("chat",
		slog.String("from", msg.From),
		slog.String("message", msg.Message))
	return nil
}
