package events

import "context"

// EventPublisher defines the interface for sending and receiving events.
type EventPublisher interface {
	// Connect prepares the publisher for use
	Connect(ctx context.Context) error

	// SendEvent queues an event for delivery
	SendEvent(event Event) error

	// Listen returns a channel of incoming events, closed when ctx ends
	Listen(ctx context.Context) (<-chan Event, error)

	// Subscribe restricts incoming events to one entity kind
	Subscribe(kind Kind) error

	// Close stops all goroutines and releases resources
	Close() error
}

var (
	_ EventPublisher = (*Client)(nil)
	_ EventPublisher = (*Bus)(nil)
)
