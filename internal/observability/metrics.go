package observability

import (
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for dispatched menu actions.
type Metrics struct {
	mu          sync.Mutex
	actionCount map[string]int64
	errorCount  map[string]int64
	elapsed     map[string]time.Duration
}

// ActionStats is a point-in-time view of one action's counters.
type ActionStats struct {
	Action   string
	Runs     int64
	Failures int64
	Elapsed  time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		actionCount: make(map[string]int64),
		errorCount:  make(map[string]int64),
		elapsed:     make(map[string]time.Duration),
	}
}

// RecordAction counts one completed action, successful or not.
func (m *Metrics) RecordAction(action string, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actionCount[action]++
	m.elapsed[action] += duration
}

// RecordError increments the failure counter for an action and error code.
func (m *Metrics) RecordError(action, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[errorKey(action, code)]++
}

// ErrorCount returns how many times action failed with code.
func (m *Metrics) ErrorCount(action, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorCount[errorKey(action, code)]
}

// Snapshot returns per-action counters in the given order, skipping actions never run.
func (m *Metrics) Snapshot(order []string) []ActionStats {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	failures := make(map[string]int64, len(m.errorCount))
	for key, n := range m.errorCount {
		action, _ := splitErrorKey(key)
		failures[action] += n
	}

	stats := make([]ActionStats, 0, len(order))
	for _, action := range order {
		runs := m.actionCount[action]
		if runs == 0 {
			continue
		}
		stats = append(stats, ActionStats{
			Action:   action,
			Runs:     runs,
			Failures: failures[action],
			Elapsed:  m.elapsed[action],
		})
	}
	return stats
}

func errorKey(action, code string) string {
	return action + "|" + code
}

func splitErrorKey(key string) (string, string) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '|' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}
