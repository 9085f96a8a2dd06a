// Package observability aggregates runtime counters for the health endpoint.
package observability

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Stats is the snapshot served by GET /health.
type Stats struct {
	ActiveConnections int    `json:"active_connections"`
	MessagesIngested  uint64 `json:"messages_ingested"`
	ReadReceipts      uint64 `json:"read_receipts"`
	EventsDropped     uint64 `json:"events_dropped"`

	// --- SYSTEM METRICS ---
	CPUPercent float64 `json:"cpu_percent"`
	RSSBytes   uint64  `json:"rss_bytes"`
	AllocMemMb uint64  `json:"alloc_mem_mb"`
	NumGC      uint32  `json:"num_gc"`
}

// Monitor collects counters from the chat pipelines and process metrics
// from the health worker. Safe for concurrent use.
type Monitor struct {
	mu          sync.RWMutex
	connections int64
	ingested    uint64
	receipts    uint64
	dropped     uint64
	cpuPercent  float64
	rssBytes    uint64
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) IncrConnections() {
	atomic.AddInt64(&m.connections, 1)
}

func (m *Monitor) DecrConnections() {
	atomic.AddInt64(&m.connections, -1)
}

func (m *Monitor) IncrMessagesIngested() {
	atomic.AddUint64(&m.ingested, 1)
}

func (m *Monitor) IncrReadReceipts() {
	atomic.AddUint64(&m.receipts, 1)
}

func (m *Monitor) IncrEventsDropped() {
	atomic.AddUint64(&m.dropped, 1)
}

// SetProcessStats is fed by the health worker's gopsutil sampling.
func (m *Monitor) SetProcessStats(cpuPercent float64, rssBytes uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cpuPercent = cpuPercent
	m.rssBytes = rssBytes
}

func (m *Monitor) Snapshot() Stats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m.mu.RLock()
	cpu, rss := m.cpuPercent, m.rssBytes
	m.mu.RUnlock()

	return Stats{
		ActiveConnections: int(atomic.LoadInt64(&m.connections)),
		MessagesIngested:  atomic.LoadUint64(&m.ingested),
		ReadReceipts:      atomic.LoadUint64(&m.receipts),
		EventsDropped:     atomic.LoadUint64(&m.dropped),
		CPUPercent:        cpu,
		RSSBytes:          rss,
		AllocMemMb:        memStats.Alloc / 1024 / 1024,
		NumGC:             memStats.NumGC,
	}
}
