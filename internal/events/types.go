package events

import "time"

// ProtocolVersion is carried in every wire message.
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventEntityChanged EventType = "entity_changed"
	EventEntityDeleted EventType = "entity_deleted"
	EventPing          EventType = "ping"
	EventPong          EventType = "pong"
)

// Kind is the entity kind an event is about.
type Kind string

const (
	KindAll      Kind = ""
	KindEmployee Kind = "employee"
	KindProduct  Kind = "product"
	KindMember   Kind = "member"
)

// Event is a change notification published after a successful write.
type Event struct {
	Type       EventType
	Kind       Kind
	EntityID   string    // empty when several entities changed in one batch
	Origin     string    // publisher that made the change
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Assigned by the daemon, monotonically increasing
}

// Matches reports whether a subscription to kind should receive e.
func (e Event) Matches(kind Kind) bool {
	return kind == KindAll || e.Kind == KindAll || e.Kind == kind
}

// SubscribeMessage is sent by clients to subscribe to one entity kind
type SubscribeMessage struct {
	Kind Kind // KindAll = everything
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Version   int
	Type      string            // "event", "subscribe", "ack", "ping", "pong"
	Event     *Event            `json:",omitempty"`
	Subscribe *SubscribeMessage `json:",omitempty"`
}
