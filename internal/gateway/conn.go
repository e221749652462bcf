package gateway

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/conquergate/conquergate/internal/model"
	"github.com/conquergate/conquergate/internal/protocol"
)

// State is a connection's progress through the handshake
type State int32

const (
	// Unauthenticated is the state of a fresh session connection
	Unauthenticated State = iota
	// Authenticated means the promise was redeemed but no character is bound
	Authenticated
	// InWorld means a player is bound and placed in the world
	InWorld
	// Closed is terminal and reachable from any state
	Closed
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	case InWorld:
		return "in_world"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// connHandler is implemented by each gateway: lifecycle hooks plus the
// per-packet dispatch.
type connHandler interface {
	Connected(c *Conn)
	Disconnected(c *Conn)
	Handle(ctx context.Context, c *Conn, p protocol.Packet) error
}

// sendBuffer is the outbound queue depth per connection
const sendBuffer = 64

// errConnClosed is returned by Send on a closed connection
var errConnClosed = errors.New("connection closed")

// Conn is the per-socket worker for one client. Its read/dispatch loop
// runs in its own goroutine; outbound frames go through a write queue so
// broadcasts from other connections never block on this socket's I/O.
type Conn struct {
	session uuid.UUID
	netConn net.Conn
	reader  *bufio.Reader
	cipher  *protocol.Cipher
	logger  *slog.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	discOnce  sync.Once

	state    atomic.Int32
	identity atomic.Uint64

	mu     sync.Mutex
	player *model.Player
}

// Conn delivers frames for its bound player
var _ model.Sender = (*Conn)(nil)

func newConn(netConn net.Conn, logger *slog.Logger) *Conn {
	session := uuid.New()
	return &Conn{
		session: session,
		netConn: netConn,
		reader:  bufio.NewReader(netConn),
		cipher:  protocol.NewCipher(),
		logger: logger.With(
			slog.String("session", session.String()),
			slog.String("remote", netConn.RemoteAddr().String())),
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// Session returns the connection's log-correlation id
func (c *Conn) Session() uuid.UUID {
	return c.session
}

// State returns the connection's handshake state
func (c *Conn) State() State {
	return State(c.state.Load())
}

func (c *Conn) setState(s State) {
	c.state.Store(int32(s))
}

// Identity returns the identity bound by the handshake, 0 before it
func (c *Conn) Identity() uint64 {
	return c.identity.Load()
}

// Player returns the bound player, nil before login completes
func (c *Conn) Player() *model.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player
}

func (c *Conn) bindPlayer(p *model.Player) {
	c.mu.Lock()
	c.player = p
	c.mu.Unlock()
	p.Bind(c)
}

// installCipher switches the connection's cipher to keyed mode
func (c *Conn) installCipher(token uint32, identity uint64) {
	c.cipher.SetKeys(token, identity)
}

// Send queues a frame for delivery. It blocks only while the queue is
// full and fails once the connection is closed.
func (c *Conn) Send(frame []byte) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return errConnClosed
	}
}

// SendFinal queues a frame and tears the connection down once the write
// loop has delivered it and everything queued before it. Used where a
// reply must reach the client ahead of a deliberate close.
func (c *Conn) SendFinal(frame []byte) error {
	if err := c.Send(frame); err != nil {
		return err
	}
	select {
	case c.send <- nil:
	case <-c.done:
	}
	return nil
}

// Close tears down the transport. Safe to call from any goroutine and
// more than once; the disconnect hook still runs exactly once, from the
// read loop's exit path.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		c.setState(Closed)
		close(c.done)
		_ = c.netConn.Close()
	})
}

// run owns the connection lifecycle: connected hook, write worker, read
// loop, then disconnect cleanup. Any error terminates only this
// connection.
func (c *Conn) run(ctx context.Context, h connHandler) {
	defer func() {
		c.Close()
		c.discOnce.Do(func() { h.Disconnected(c) })
	}()

	h.Connected(c)
	go c.writeLoop()

	for {
		p, err := protocol.ReadFrame(c.reader, c.cipher)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				c.logger.Debug("read failed", slog.String("error", err.Error()))
			}
			return
		}

		if err := h.Handle(ctx, c, p); err != nil {
			c.logger.Warn("closing connection",
				slog.String("packet", p.Type().String()),
				slog.String("error", err.Error()))
			return
		}

		select {
		case <-c.done:
			return
		default:
		}
	}
}

func (c *Conn) writeLoop() {
	for {
		select {
		case frame := <-c.send:
			// nil is the SendFinal close marker: everything queued ahead
			// of it has been written
			if frame == nil {
				c.Close()
				return
			}
			if err := protocol.WriteFrame(c.netConn, frame, c.cipher); err != nil {
				c.logger.Debug("write failed", slog.String("error", err.Error()))
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
