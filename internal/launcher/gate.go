package launcher

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/familiez/humans-service/internal/logger"
)

// AttachGate holds server startup until a debug client connects.
//
// In debug mode the process must not begin serving application traffic until
// an external debugger attaches to the debug port. The gate binds the port
// eagerly, so "port already in use" fails startup instead of surfacing after
// the wait.
type AttachGate struct {
	ln net.Listener

	mu   sync.Mutex
	conn net.Conn
}

// ListenAttachGate binds the debug port on all interfaces. A port that is
// already bound is a fatal startup error for the caller.
func ListenAttachGate(addr string) (*AttachGate, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind debug port: %w", err)
	}
	return &AttachGate{ln: ln}, nil
}

// Addr returns the bound listen address.
func (g *AttachGate) Addr() net.Addr {
	return g.ln.Addr()
}

// WaitForClient blocks until one client connects to the debug port or ctx is
// canceled. There is deliberately no timeout: an unattended debug-mode
// process hangs here until terminated externally.
//
// The accepted connection is held open for the lifetime of the gate so the
// attached client observes the process going away on shutdown.
func (g *AttachGate) WaitForClient(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			g.ln.Close()
		case <-done:
		}
	}()

	conn, err := g.ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to accept debug client: %w", err)
	}

	g.mu.Lock()
	g.conn = conn
	g.mu.Unlock()

	logger.Infof("Debug client attached from %s", conn.RemoteAddr())
	return nil
}

// Close releases the listening socket and any attached client connection.
func (g *AttachGate) Close() error {
	g.mu.Lock()
	if g.conn != nil {
		g.conn.Close()
		g.conn = nil
	}
	g.mu.Unlock()
	return g.ln.Close()
}
