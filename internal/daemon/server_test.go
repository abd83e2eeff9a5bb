package daemon

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/coffeehub/internal/events"
)

func getTestSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "coffeehub-test.sock")
}

func setupTestDaemonWith(t *testing.T, opts Options) (*Server, string) {
	t.Helper()
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath, opts)
	require.NoError(t, err, "create test daemon")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = server.Shutdown()
	})

	go func() { _ = server.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); err == nil {
			time.Sleep(10 * time.Millisecond)
			return server, socketPath
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("timeout waiting for daemon socket")
	return nil, ""
}

func setupTestDaemon(t *testing.T) (*Server, string) {
	t.Helper()
	return setupTestDaemonWith(t, Options{})
}

func connectRawClient(t *testing.T, socketPath string) (net.Conn, *json.Encoder, *json.Decoder) {
	t.Helper()

	conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
	require.NoError(t, err, "dial daemon")
	t.Cleanup(func() { _ = conn.Close() })

	return conn, json.NewEncoder(conn), json.NewDecoder(conn)
}

// subscribeRaw sends a subscription and waits for the ack.
func subscribeRaw(t *testing.T, enc *json.Encoder, dec *json.Decoder, kind events.Kind) {
	t.Helper()
	require.NoError(t, enc.Encode(events.Message{
		Version:   events.ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &events.SubscribeMessage{Kind: kind},
	}))
	var ack events.Message
	require.NoError(t, dec.Decode(&ack))
	require.Equal(t, "ack", ack.Type)
}

func waitForEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()
	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return event
	case <-time.After(timeout):
		t.Fatal("timeout waiting for event")
		return events.Event{}
	}
}

func waitForNoEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) {
	t.Helper()
	select {
	case event := <-ch:
		t.Fatalf("unexpected event: %+v", event)
	case <-time.After(timeout):
	}
}

// setupTestClient connects an events.Client subscribed to kind and
// returns its event stream.
func setupTestClient(t *testing.T, socketPath string, kind events.Kind) (*events.Client, <-chan events.Event) {
	t.Helper()
	t.Setenv("COFFEEHUB_EVENT_DEBOUNCE_MS", "10")

	client, err := events.NewClient(socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, client.Connect(ctx))
	require.NoError(t, client.Subscribe(kind))

	listenCtx, stop := context.WithCancel(context.Background())
	t.Cleanup(stop)
	ch, err := client.Listen(listenCtx)
	require.NoError(t, err)

	// let the subscription land
	time.Sleep(100 * time.Millisecond)
	return client, ch
}

func waitForClients(t *testing.T, server *Server, n int32) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return server.Metrics().ConnectedClients.Load() == n
	}, 2*time.Second, 10*time.Millisecond)
}

// ============================================================================
// Server Initialization Tests
// ============================================================================

func TestNewServer_Success(t *testing.T) {
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath, Options{})
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	_, err = os.Stat(socketPath)
	assert.NoError(t, err, "socket file should exist")
	assert.Equal(t, 100, server.opts.BroadcastBuffer)
	assert.Equal(t, 10, server.opts.ClientBuffer)
	assert.Equal(t, 30*time.Second, server.opts.PingInterval)
}

func TestNewServer_DirectoryCreation(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "nested", "dir", "coffeehub.sock")

	server, err := NewServer(socketPath, Options{})
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	info, err := os.Stat(filepath.Dir(socketPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewServer_StaleSocketCleanup(t *testing.T) {
	socketPath := getTestSocketPath(t)
	require.NoError(t, os.WriteFile(socketPath, []byte("stale"), 0o600))

	server, err := NewServer(socketPath, Options{})
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	info, err := os.Stat(socketPath)
	require.NoError(t, err)
	assert.Equal(t, os.ModeSocket, info.Mode()&os.ModeSocket)
}

func TestNewServer_EnvVarConfiguration(t *testing.T) {
	t.Setenv("COFFEEHUB_DAEMON_BROADCAST_BUFFER", "250")
	t.Setenv("COFFEEHUB_DAEMON_CLIENT_BUFFER", "25")

	server, err := NewServer(getTestSocketPath(t), Options{})
	require.NoError(t, err)
	defer func() { _ = server.Shutdown() }()

	assert.Equal(t, 250, server.opts.BroadcastBuffer)
	assert.Equal(t, 25, server.opts.ClientBuffer)
	assert.Equal(t, 250, cap(server.broadcast))
}

func TestNewServer_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("COFFEEHUB_DAEMON_BROADCAST_BUFFER", "-3")
	t.Setenv("COFFEEHUB_DAEMON_CLIENT_BUFFER", "lots")

	opts := DefaultOptions()
	assert.Equal(t, 100, opts.BroadcastBuffer)
	assert.Equal(t, 10, opts.ClientBuffer)
}

// ============================================================================
// Client Connection Tests
// ============================================================================

func TestClientConnection_Multiple(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	for i := 0; i < 3; i++ {
		connectRawClient(t, socketPath)
	}
	waitForClients(t, server, 3)
}

func TestClientDisconnection(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	conn, _, _ := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	_ = conn.Close()
	waitForClients(t, server, 0)
}

// ============================================================================
// Event Broadcasting Tests
// ============================================================================

func TestBroadcast_SingleClient(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	_, ch := setupTestClient(t, socketPath, events.KindEmployee)

	require.NoError(t, server.Broadcast(events.Event{
		Type:     events.EventEntityChanged,
		Kind:     events.KindEmployee,
		EntityID: "EN1",
	}))

	got := waitForEvent(t, ch, 2*time.Second)
	assert.Equal(t, events.KindEmployee, got.Kind)
	assert.Equal(t, "EN1", got.EntityID)
	assert.NotZero(t, got.SequenceID, "sequence id should be assigned")
}

func TestBroadcast_MultipleClients(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	var chans []<-chan events.Event
	for i := 0; i < 3; i++ {
		_, ch := setupTestClient(t, socketPath, events.KindProduct)
		chans = append(chans, ch)
	}

	require.NoError(t, server.Broadcast(events.Event{Type: events.EventEntityChanged, Kind: events.KindProduct}))

	for i, ch := range chans {
		got := waitForEvent(t, ch, 2*time.Second)
		assert.Equal(t, events.KindProduct, got.Kind, "client %d", i)
	}
}

func TestBroadcast_SubscriptionFiltering(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	_, employees := setupTestClient(t, socketPath, events.KindEmployee)
	_, products := setupTestClient(t, socketPath, events.KindProduct)

	require.NoError(t, server.Broadcast(events.Event{Type: events.EventEntityChanged, Kind: events.KindProduct}))

	got := waitForEvent(t, products, 2*time.Second)
	assert.Equal(t, events.KindProduct, got.Kind)
	waitForNoEvent(t, employees, 200*time.Millisecond)
}

func TestBroadcast_AllKinds(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	_, ch := setupTestClient(t, socketPath, events.KindAll)

	for _, kind := range []events.Kind{events.KindEmployee, events.KindMember} {
		require.NoError(t, server.Broadcast(events.Event{Type: events.EventEntityChanged, Kind: kind}))
		got := waitForEvent(t, ch, 2*time.Second)
		assert.Equal(t, kind, got.Kind)
	}
}

func TestBroadcast_SequenceNumbers(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	_, ch := setupTestClient(t, socketPath, events.KindAll)

	var last int64
	for i := 0; i < 5; i++ {
		require.NoError(t, server.Broadcast(events.Event{Type: events.EventEntityChanged, Kind: events.KindMember}))
		got := waitForEvent(t, ch, 2*time.Second)
		assert.Greater(t, got.SequenceID, last)
		last = got.SequenceID
	}
}

func TestBroadcast_NotEchoedToPublisher(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	publisher, published := setupTestClient(t, socketPath, events.KindAll)
	_, observer := setupTestClient(t, socketPath, events.KindAll)

	require.NoError(t, publisher.SendEvent(events.Event{
		Type:     events.EventEntityDeleted,
		Kind:     events.KindProduct,
		EntityID: "3",
		Origin:   "window-a",
	}))

	got := waitForEvent(t, observer, 2*time.Second)
	assert.Equal(t, events.EventEntityDeleted, got.Type)
	assert.Equal(t, "window-a", got.Origin)
	waitForNoEvent(t, published, 200*time.Millisecond)

	assert.Eventually(t, func() bool {
		return server.Metrics().Snapshot().ByKind[events.KindProduct] == 1
	}, time.Second, 10*time.Millisecond)
}

func TestBroadcast_RawClientPublish(t *testing.T) {
	_, socketPath := setupTestDaemon(t)

	_, enc, dec := connectRawClient(t, socketPath)
	subscribeRaw(t, enc, dec, events.KindMember)

	_, pubEnc, pubDec := connectRawClient(t, socketPath)
	subscribeRaw(t, pubEnc, pubDec, events.KindAll)

	require.NoError(t, pubEnc.Encode(events.Message{
		Version: events.ProtocolVersion,
		Type:    "event",
		Event:   &events.Event{Type: events.EventEntityChanged, Kind: events.KindMember, EntityID: "TCHMN00001S"},
	}))

	var msg events.Message
	require.NoError(t, dec.Decode(&msg))
	require.Equal(t, "event", msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(t, "TCHMN00001S", msg.Event.EntityID)
}

// ============================================================================
// Health Tests
// ============================================================================

func TestHealth_PingAndStaleRemoval(t *testing.T) {
	server, socketPath := setupTestDaemonWith(t, Options{
		PingInterval: 50 * time.Millisecond,
		StaleAfter:   120 * time.Millisecond,
	})

	_, _, dec := connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	var msg events.Message
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, "ping", msg.Type)

	// never answer, so the daemon should drop the connection
	waitForClients(t, server, 0)
	assert.GreaterOrEqual(t, server.Metrics().StaleRemoved.Load(), int64(1))
}

func TestHealth_PongKeepsClient(t *testing.T) {
	server, socketPath := setupTestDaemonWith(t, Options{
		PingInterval: 40 * time.Millisecond,
		StaleAfter:   150 * time.Millisecond,
	})

	_, _ = setupTestClient(t, socketPath, events.KindAll)
	waitForClients(t, server, 1)

	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), server.Metrics().ConnectedClients.Load())
	assert.Zero(t, server.Metrics().StaleRemoved.Load())
}

// ============================================================================
// Shutdown Tests
// ============================================================================

func TestShutdown_GracefulClose(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	connectRawClient(t, socketPath)
	waitForClients(t, server, 1)

	require.NoError(t, server.Shutdown())

	_, err := os.Stat(socketPath)
	assert.True(t, os.IsNotExist(err), "socket should be removed")
	assert.Equal(t, int32(0), server.Metrics().ConnectedClients.Load())
}

func TestShutdown_Idempotent(t *testing.T) {
	server, _ := setupTestDaemon(t)

	require.NoError(t, server.Shutdown())
	assert.NoError(t, server.Shutdown())
}

func TestShutdown_BroadcastAfterShutdown(t *testing.T) {
	server, _ := setupTestDaemon(t)
	require.NoError(t, server.Shutdown())

	assert.NotPanics(t, func() {
		assert.Error(t, server.Broadcast(events.Event{Kind: events.KindEmployee}))
	})
}
