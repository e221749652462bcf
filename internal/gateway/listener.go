package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
)

// listen binds a TCP listener on the port. A bind failure is fatal to the
// calling gateway only.
func listen(port int) (net.Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("bind port %d: %w", port, err)
	}
	return ln, nil
}

// serve runs the accept loop: one Conn worker goroutine per accepted
// connection. Accept errors are logged and never stop the loop; the loop
// ends only when the listener is closed.
func serve(ctx context.Context, ln net.Listener, h connHandler, logger *slog.Logger) {
	for {
		netConn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Warn("accept failed", slog.String("error", err.Error()))
			continue
		}

		c := newConn(netConn, logger)
		go c.run(ctx, h)
	}
}
