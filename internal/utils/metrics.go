package utils

import (
	"sync"
	"sync/atomic"
)

// Metrics holds simple in-process counters surfaced by GET /metrics.
// Nothing here survives a restart; durable history lives in the log table.
type Metrics struct {
	RequestsTotal  atomic.Int64
	ErrorsTotal    atomic.Int64
	LogWriteErrors atomic.Int64
	ForwardErrors  atomic.Int64

	mu         sync.Mutex
	byCategory map[string]int64
}

var metrics = &Metrics{byCategory: make(map[string]int64)}

func GetMetrics() *Metrics { return metrics }

// CountCategory records one classification outcome.
func (m *Metrics) CountCategory(category string) {
	m.mu.Lock()
	m.byCategory[category]++
	m.mu.Unlock()
}

// Snapshot returns a copy suitable for JSON rendering.
func (m *Metrics) Snapshot() map[string]any {
	m.mu.Lock()
	categories := make(map[string]int64, len(m.byCategory))
	for k, v := range m.byCategory {
		categories[k] = v
	}
	m.mu.Unlock()

	return map[string]any{
		"requests_total":    m.RequestsTotal.Load(),
		"errors_total":      m.ErrorsTotal.Load(),
		"log_write_errors":  m.LogWriteErrors.Load(),
		"forward_errors":    m.ForwardErrors.Load(),
		"by_classification": categories,
	}
}
