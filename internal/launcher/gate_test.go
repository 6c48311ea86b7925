package launcher

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAttachGate_PortAlreadyBound(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = ListenAttachGate(ln.Addr().String())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to bind debug port")
}

func TestAttachGate_WaitsUntilClientConnects(t *testing.T) {
	gate, err := ListenAttachGate("127.0.0.1:0")
	require.NoError(t, err)
	defer gate.Close()

	attached := make(chan error, 1)
	go func() {
		attached <- gate.WaitForClient(context.Background())
	}()

	// No client yet: the gate must stay blocked.
	select {
	case err := <-attached:
		t.Fatalf("gate released without a client: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	conn, err := net.Dial("tcp", gate.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	select {
	case err := <-attached:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("gate did not release after client connected")
	}
}

func TestAttachGate_CancelUnblocksWait(t *testing.T) {
	gate, err := ListenAttachGate("127.0.0.1:0")
	require.NoError(t, err)
	defer gate.Close()

	ctx, cancel := context.WithCancel(context.Background())

	attached := make(chan error, 1)
	go func() {
		attached <- gate.WaitForClient(ctx)
	}()

	cancel()

	select {
	case err := <-attached:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("gate did not release on cancellation")
	}
}

func TestAttachGate_CloseReleasesPort(t *testing.T) {
	gate, err := ListenAttachGate("127.0.0.1:0")
	require.NoError(t, err)

	addr := gate.Addr().String()
	require.NoError(t, gate.Close())

	// The port must be bindable again after Close.
	ln, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	ln.Close()
}
