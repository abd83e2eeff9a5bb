package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"
)

// ErrQueueFull is returned by SendEvent when the batching queue is full.
var ErrQueueFull = errors.New("event queue full")

// ErrNotConnected is returned when the client has no daemon connection.
var ErrNotConnected = errors.New("not connected to daemon")

// Client is a connection to the coffeehub event daemon. It batches outgoing
// events, reconnects with backoff and drops duplicate sequence ids.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	// Batching configuration
	eventQueue chan Event
	debounce   time.Duration
	closed     bool
	batching   bool
	batchOnce  sync.Once

	// Reconnection configuration
	maxRetries int
	baseDelay  time.Duration

	currentKind  Kind
	lastSequence int64

	ctx    context.Context
	cancel context.CancelFunc

	batcherDone chan struct{}
}

// NewClient creates a new event client but does not connect.
// The debounce window defaults to 100ms and can be changed with
// COFFEEHUB_EVENT_DEBOUNCE_MS.
func NewClient(socketPath string) (*Client, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("socket path is required")
	}

	debounceMs := 100
	if envVal := os.Getenv("COFFEEHUB_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}, nil
}

// Connect dials the daemon socket and re-sends the current subscription.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("client closed")
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)
	c.lastSequence = 0

	msg := Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{Kind: c.currentKind},
	}
	if err := c.encoder.Encode(msg); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Debug("error closing connection", "error", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	c.batchOnce.Do(func() {
		c.batching = true
		go c.startBatcher()
	})

	return nil
}

// SendEvent queues an event. Events are coalesced per kind and origin
// within the debounce window. Never blocks.
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return fmt.Errorf("client closed")
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case c.eventQueue <- event:
		return nil
	default:
		return fmt.Errorf("%w (capacity %d)", ErrQueueFull, cap(c.eventQueue))
	}
}

type batchKey struct {
	kind   Kind
	origin string
}

// startBatcher drains the queue and flushes one event per (kind, origin)
// every debounce tick.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	pending := map[batchKey]Event{}
	var order []batchKey

	add := func(e Event) {
		key := batchKey{kind: e.Kind, origin: e.Origin}
		prev, ok := pending[key]
		if !ok {
			order = append(order, key)
			pending[key] = e
			return
		}
		if prev.EntityID != e.EntityID {
			e.EntityID = ""
		}
		if prev.Type != e.Type {
			e.Type = EventEntityChanged
		}
		pending[key] = e
	}

	flush := func() {
		for _, key := range order {
			if err := c.sendToSocket(pending[key]); err != nil && !isConnectionError(err) {
				slog.Warn("failed to send batched event", "kind", key.kind, "error", err)
			}
		}
		pending = map[batchKey]Event{}
		order = order[:0]
	}

	for {
		select {
		case <-c.ctx.Done():
			for {
				select {
				case e, ok := <-c.eventQueue:
					if !ok {
						flush()
						return
					}
					add(e)
				default:
					flush()
					return
				}
			}

		case e, ok := <-c.eventQueue:
			if !ok {
				flush()
				return
			}
			add(e)

		case <-ticker.C:
			flush()
		}
	}
}

// sendToSocket sends an event to the daemon socket.
func (c *Client) sendToSocket(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	defer func() { _ = c.conn.SetWriteDeadline(time.Time{}) }()

	msg := Message{
		Version: ProtocolVersion,
		Type:    "event",
		Event:   &event,
	}
	if event.Type == EventPong {
		msg = Message{Version: ProtocolVersion, Type: "pong"}
	}
	return c.encoder.Encode(msg)
}

// Listen starts listening for events from the daemon.
// The channel is closed when ctx is done or reconnection gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.ctx.Done():
			return
		default:
		}

		err := c.readEvents(ctx, eventChan)
		if err == nil || ctx.Err() != nil || c.ctx.Err() != nil {
			return
		}
		slog.Info("daemon connection lost, reconnecting", "error", err)

		if !c.reconnect(ctx) {
			slog.Warn("giving up on daemon connection", "attempts", c.maxRetries)
			return
		}
		slog.Info("reconnected to daemon")
	}
}

// readEvents reads messages from the socket until it fails.
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		var msg Message

		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		// Daemon pings every 30s; twice that without traffic is a dead link.
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			c.mu.Lock()
			fresh := msg.Event.SequenceID > c.lastSequence
			if fresh {
				c.lastSequence = msg.Event.SequenceID
			}
			c.mu.Unlock()
			if !fresh {
				continue
			}
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return nil
			}

		case "ping":
			if err := c.sendToSocket(Event{Type: EventPong}); err != nil && !isConnectionError(err) {
				slog.Debug("failed to send pong", "error", err)
			}
		}
	}
}

// isConnectionError checks if an error is a network connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotConnected) || errors.Is(err, net.ErrClosed) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset")
}

// DialHint suggests what to do about a failed daemon dial. Views fall back
// to in-process events either way, so the hint is informational.
func DialHint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, os.ErrNotExist):
		return "no daemon socket; start coffeehub-daemon to share events between views"
	case errors.Is(err, os.ErrPermission):
		return "daemon socket not accessible; check the permissions of its directory"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "stale daemon socket; remove it and restart coffeehub-daemon"
	default:
		return "daemon unavailable"
	}
}

// reconnect retries Connect with exponential backoff.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-c.ctx.Done():
			return false
		case <-time.After(delay):
			c.mu.Lock()
			if c.conn != nil {
				_ = c.conn.Close()
				c.conn = nil
			}
			c.mu.Unlock()

			if err := c.Connect(ctx); err == nil {
				return true
			}

			slog.Debug("reconnection attempt failed", "attempt", i+1, "max", c.maxRetries, "retry_in", delay)
			delay *= 2
		}
	}

	return false
}

// Subscribe restricts incoming events to one kind; KindAll means everything.
// The kind is remembered and re-sent after a reconnect.
func (c *Client) Subscribe(kind Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentKind = kind

	if c.conn == nil {
		return ErrNotConnected
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	defer func() { _ = c.conn.SetWriteDeadline(time.Time{}) }()

	return c.encoder.Encode(Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{Kind: kind},
	})
}

// Close flushes pending events, closes the connection and stops all
// goroutines. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	started := c.batching
	c.mu.Unlock()

	c.cancel()

	if started {
		<-c.batcherDone
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
