package daemon

import (
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/events"
)

// Metrics tracks daemon statistics using atomic operations
type Metrics struct {
	EventsReceived   atomic.Int64
	EventsSent       atomic.Int64
	EventsDropped    atomic.Int64
	StaleRemoved     atomic.Int64
	ConnectedClients atomic.Int32

	employeeEvents atomic.Int64
	productEvents  atomic.Int64
	memberEvents   atomic.Int64

	StartTime time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// RecordReceived counts an event published by a client.
func (m *Metrics) RecordReceived(kind events.Kind) {
	m.EventsReceived.Add(1)
	switch kind {
	case events.KindEmployee:
		m.employeeEvents.Add(1)
	case events.KindProduct:
		m.productEvents.Add(1)
	case events.KindMember:
		m.memberEvents.Add(1)
	}
}

// RecordSent counts a message queued to a client.
func (m *Metrics) RecordSent() { m.EventsSent.Add(1) }

// RecordDropped counts a message skipped because a queue was full.
func (m *Metrics) RecordDropped() { m.EventsDropped.Add(1) }

// RecordStaleRemoved counts a client dropped for missing pongs.
func (m *Metrics) RecordStaleRemoved() { m.StaleRemoved.Add(1) }

// SetConnectedClients sets the current connected clients count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

// MetricsSnapshot is a point-in-time copy of the metrics
type MetricsSnapshot struct {
	EventsReceived   int64                 `json:"events_received"`
	EventsSent       int64                 `json:"events_sent"`
	EventsDropped    int64                 `json:"events_dropped"`
	StaleRemoved     int64                 `json:"stale_removed"`
	ConnectedClients int32                 `json:"connected_clients"`
	ByKind           map[events.Kind]int64 `json:"by_kind"`
	StartTime        time.Time             `json:"start_time"`
	Uptime           string                `json:"uptime"`
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsReceived:   m.EventsReceived.Load(),
		EventsSent:       m.EventsSent.Load(),
		EventsDropped:    m.EventsDropped.Load(),
		StaleRemoved:     m.StaleRemoved.Load(),
		ConnectedClients: m.ConnectedClients.Load(),
		ByKind: map[events.Kind]int64{
			events.KindEmployee: m.employeeEvents.Load(),
			events.KindProduct:  m.productEvents.Load(),
			events.KindMember:   m.memberEvents.Load(),
		},
		StartTime: m.StartTime,
		Uptime:    time.Since(m.StartTime).Round(time.Second).String(),
	}
}
