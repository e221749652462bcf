package gateway

import (
	"context"
	"log/slog"

	"github.com/conquergate/conquergate/internal/protocol"
)

// Handler is a domain-logic collaborator invoked by the session gateway
// for packets whose semantics live outside the network core (item usage,
// general data, interaction).
type Handler interface {
	Handle(ctx context.Context, c *Conn, p protocol.Packet) error
}

// CommandDispatcher handles "/"-prefixed chat commands
type CommandDispatcher interface {
	Dispatch(ctx context.Context, c *Conn, msg protocol.TalkMessage) error
}

// Handlers bundles the session gateway's collaborators. Zero-value fields
// are replaced with logging defaults.
type Handlers struct {
	Action   Handler
	Item     Handler
	Interact Handler
	Command  CommandDispatcher
}

func (h Handlers) withDefaults(logger *slog.Logger) Handlers {
	if h.Action == nil {
		h.Action = NewLoggingHandler("action", logger)
	}
	if h.Item == nil {
		h.Item = NewLoggingHandler("item", logger)
	}
	if h.Interact == nil {
		h.Interact = NewLoggingHandler("interact", logger)
	}
	if h.Command == nil {
		h.Command = NewLoggingDispatcher(logger)
	}
	return h
}

// LoggingHandler is the default collaborator: it logs the packet and does
// nothing else.
type LoggingHandler struct {
	kind   string
	logger *slog.Logger
}

// NewLoggingHandler creates a logging handler for the given packet kind
func NewLoggingHandler(kind string, logger *slog.Logger) *LoggingHandler {
	return &LoggingHandler{kind: kind, logger: logger.With(slog.String("handler", kind))}
}

// Handle logs the packet
func (h *LoggingHandler) Handle(ctx context.Context, c *Conn, p protocol.Packet) error {
	h.logger.Info("packet delegated",
		slog.String("packet", p.Type().String()),
		slog.Uint64("identity", c.Identity()))
	return nil
}

// LoggingDispatcher is the default command dispatcher: it logs the
// command and does nothing else.
type LoggingDispatcher struct {
	logger *slog.Logger
}

// NewLoggingDispatcher creates a logging command dispatcher
func NewLoggingDispatcher(logger *slog.Logger) *LoggingDispatcher {
	return &LoggingDispatcher{logger: logger.With(slog.String("handler", "command"))}
}

// Dispatch logs the command
func (d *LoggingDispatcher) Dispatch(ctx context.Context, c *Conn, msg protocol.TalkMessage) error {
	d.logger.Info("command received",
		slog.String("from", msg.From),
		slog.String("command", msg.Message))
	return nil
}
