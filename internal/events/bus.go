package events

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Bus is an in-process EventPublisher for when no daemon is running.
// Every listener receives every event matching the bus subscription.
type Bus struct {
	mu        sync.Mutex
	listeners map[int]chan Event
	nextID    int
	kind      Kind
	sequence  int64
	closed    bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: map[int]chan Event{}}
}

// Connect is a no-op; the bus is always available.
func (b *Bus) Connect(ctx context.Context) error { return nil }

// SendEvent stamps and delivers the event. Listeners that are not keeping
// up miss it rather than block the publisher.
func (b *Bus) SendEvent(event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("event bus closed")
	}

	b.sequence++
	event.SequenceID = b.sequence
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if !event.Matches(b.kind) {
		return nil
	}

	for _, ch := range b.listeners {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Listen registers a listener; its channel closes when ctx ends or the bus
// is closed.
func (b *Bus) Listen(ctx context.Context) (<-chan Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("event bus closed")
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 32)
	b.listeners[id] = ch

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.listeners[id]; ok {
			delete(b.listeners, id)
			close(c)
		}
	}()

	return ch, nil
}

// Subscribe restricts delivered events to one kind.
func (b *Bus) Subscribe(kind Kind) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.kind = kind
	return nil
}

// Close closes every listener channel.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, ch := range b.listeners {
		close(ch)
		delete(b.listeners, id)
	}
	return nil
}
