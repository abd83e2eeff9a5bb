package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/events"
)

// client is one connected event client
type client struct {
	conn     net.Conn
	send     chan events.Message
	kind     events.Kind
	lastPong time.Time
	closed   bool
	mu       sync.Mutex // Protects kind, lastPong and closed
}

// close shuts the connection and the send queue once.
func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.conn.Close()
	close(c.send)
}

func (c *client) subscribed(e events.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return e.Matches(c.kind)
}

// envelope carries an event with the connection that published it, so the
// publisher does not get its own change echoed back.
type envelope struct {
	event events.Event
	from  *client
}

// Options tunes the server's buffers and health checks.
type Options struct {
	BroadcastBuffer int
	ClientBuffer    int
	PingInterval    time.Duration
	StaleAfter      time.Duration
}

// DefaultOptions reads COFFEEHUB_DAEMON_* overrides from the environment.
func DefaultOptions() Options {
	return Options{
		BroadcastBuffer: getEnvInt("COFFEEHUB_DAEMON_BROADCAST_BUFFER", 100),
		ClientBuffer:    getEnvInt("COFFEEHUB_DAEMON_CLIENT_BUFFER", 10),
		PingInterval:    30 * time.Second,
		StaleAfter:      90 * time.Second,
	}
}

// Server is the coffeehub event daemon: it fans change events out to every
// subscribed client except the publisher.
type Server struct {
	socketPath      string
	listener        net.Listener
	clients         map[*client]bool
	mu              sync.RWMutex
	ctx             context.Context
	cancel          context.CancelFunc
	broadcast       chan envelope
	metrics         *Metrics
	sequenceCounter atomic.Int64
	opts            Options
	shutdownOnce    sync.Once
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer creates the socket (removing a stale one) but does not serve.
func NewServer(socketPath string, opts Options) (*Server, error) {
	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	defaults := DefaultOptions()
	if opts.BroadcastBuffer <= 0 {
		opts.BroadcastBuffer = defaults.BroadcastBuffer
	}
	if opts.ClientBuffer <= 0 {
		opts.ClientBuffer = defaults.ClientBuffer
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaults.PingInterval
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = defaults.StaleAfter
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		clients:    make(map[*client]bool),
		ctx:        ctx,
		cancel:     cancel,
		broadcast:  make(chan envelope, opts.BroadcastBuffer),
		metrics:    NewMetrics(),
		opts:       opts,
	}, nil
}

// Metrics returns the live metrics.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Start serves until ctx is cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "socket", s.socketPath)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- s.acceptLoop(runCtx)
	}()
	go s.broadcastLoop(runCtx)
	go s.monitorHealth(runCtx)

	var err error
	select {
	case <-runCtx.Done():
		slog.Info("daemon context cancelled, shutting down")
	case err = <-acceptErr:
		if err != nil {
			slog.Error("accept loop failed", "error", err)
		}
	}

	if shutdownErr := s.Shutdown(); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Deadline lets the loop notice cancellation.
		if ul, ok := s.listener.(*net.UnixListener); ok {
			if err := ul.SetDeadline(time.Now().Add(1 * time.Second)); err != nil {
				slog.Debug("failed to set listener deadline", "error", err)
			}
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.opts.ClientBuffer),
			lastPong: time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = true
		s.mu.Unlock()
		s.updateClientCount()

		slog.Info("client connected", "clients", s.clientCount())

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case env := <-s.broadcast:
			event := env.event
			event.SequenceID = s.sequenceCounter.Add(1)

			s.mu.RLock()
			for c := range s.clients {
				if c == env.from || !c.subscribed(event) {
					continue
				}
				msg := events.Message{
					Version: events.ProtocolVersion,
					Type:    "event",
					Event:   &event,
				}
				if !s.sendToClient(c, msg) {
					slog.Warn("client send queue full, event dropped", "kind", event.Kind)
				}
			}
			s.mu.RUnlock()
		}
	}
}

// handleClient reads messages from a connected client
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		slog.Info("client disconnected", "clients", s.clientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			slog.Warn("protocol version mismatch", "got", msg.Version, "want", events.ProtocolVersion)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			s.metrics.RecordReceived(msg.Event.Kind)
			select {
			case s.broadcast <- envelope{event: *msg.Event, from: c}:
			default:
				s.metrics.RecordDropped()
				slog.Warn("broadcast channel full")
			}

		case "subscribe":
			if msg.Subscribe != nil {
				c.mu.Lock()
				c.kind = msg.Subscribe.Kind
				c.mu.Unlock()
				slog.Debug("client subscribed", "kind", msg.Subscribe.Kind)
				s.sendToClient(c, events.Message{Version: events.ProtocolVersion, Type: "ack"})
			}

		case "pong":
			c.mu.Lock()
			c.lastPong = time.Now()
			c.mu.Unlock()
		}
	}
}

// clientWriter sends queued messages to a client
func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)
	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth pings clients and removes the ones that stopped answering.
func (s *Server) monitorHealth(ctx context.Context) {
	ticker := time.NewTicker(s.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			s.mu.RLock()
			clients := make([]*client, 0, len(s.clients))
			for c := range s.clients {
				clients = append(clients, c)
			}
			s.mu.RUnlock()

			now := time.Now()
			ping := events.Message{Version: events.ProtocolVersion, Type: "ping"}
			for _, c := range clients {
				c.mu.Lock()
				silent := now.Sub(c.lastPong)
				c.mu.Unlock()

				if silent > s.opts.StaleAfter {
					slog.Info("removing stale client", "silent_for", silent.Round(time.Second))
					s.metrics.RecordStaleRemoved()
					s.removeClient(c)
					continue
				}
				s.sendToClient(c, ping)
			}
		}
	}
}

// Broadcast publishes an event from the daemon itself (non-blocking).
func (s *Server) Broadcast(event events.Event) error {
	select {
	case <-s.ctx.Done():
		return fmt.Errorf("daemon shut down")
	default:
	}
	select {
	case s.broadcast <- envelope{event: event}:
		return nil
	default:
		s.metrics.RecordDropped()
		return fmt.Errorf("broadcast channel full")
	}
}

// Shutdown closes the listener and all clients and removes the socket.
// The broadcast channel stays open so late publishers never panic.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		slog.Info("shutting down daemon", "metrics", s.metrics.Snapshot())

		s.cancel()

		if s.listener != nil {
			if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
				err = closeErr
			}
		}

		s.mu.Lock()
		for c := range s.clients {
			c.close()
		}
		s.clients = make(map[*client]bool)
		s.mu.Unlock()
		s.updateClientCount()

		if removeErr := os.Remove(s.socketPath); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Warn("failed to remove socket file", "error", removeErr)
		}
	})
	return err
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.clientCount()))
}

// removeClient safely removes a client from the server
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	c.close()

	s.updateClientCount()
}

// sendToClient queues a message without blocking; false means dropped.
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		s.metrics.RecordSent()
		return true
	default:
		s.metrics.RecordDropped()
		return false
	}
}
