package daemon

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/coffeehub/internal/events"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	snap := m.Snapshot()
	assert.Zero(t, snap.EventsReceived)
	assert.Zero(t, snap.EventsSent)
	assert.Zero(t, snap.EventsDropped)
	assert.Zero(t, snap.ConnectedClients)
	assert.WithinDuration(t, time.Now(), m.StartTime, time.Second)
}

func TestRecordReceived_ByKind(t *testing.T) {
	m := NewMetrics()

	m.RecordReceived(events.KindEmployee)
	m.RecordReceived(events.KindEmployee)
	m.RecordReceived(events.KindMember)
	m.RecordReceived(events.KindAll)

	snap := m.Snapshot()
	assert.Equal(t, int64(4), snap.EventsReceived)
	assert.Equal(t, int64(2), snap.ByKind[events.KindEmployee])
	assert.Equal(t, int64(0), snap.ByKind[events.KindProduct])
	assert.Equal(t, int64(1), snap.ByKind[events.KindMember])
}

func TestRecordCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordSent()
	m.RecordSent()
	m.RecordDropped()
	m.RecordStaleRemoved()
	m.SetConnectedClients(4)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.EventsSent)
	assert.Equal(t, int64(1), snap.EventsDropped)
	assert.Equal(t, int64(1), snap.StaleRemoved)
	assert.Equal(t, int32(4), snap.ConnectedClients)
	assert.NotEmpty(t, snap.Uptime)
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordReceived(events.KindProduct)
				m.RecordSent()
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.Equal(t, int64(1000), snap.EventsReceived)
	assert.Equal(t, int64(1000), snap.EventsSent)
	assert.Equal(t, int64(1000), snap.ByKind[events.KindProduct])
}
