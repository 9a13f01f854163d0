package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metric names recorded by the service
const (
	CounterRequests      = "http_requests"
	CounterMutations     = "store_mutations"
	CounterCacheHits     = "cache_hits"
	CounterCacheMisses   = "cache_misses"
	CounterEventsOut     = "events_published"
	CounterEventsIn      = "events_consumed"
	CounterIndexed       = "rentals_indexed"
	TimerRequestDuration = "http_request_ms"
)

// timerEntry captures timing information for one named timer
type timerEntry struct {
	count       int64
	totalTimeMs int64
	minTimeMs   int64
	maxTimeMs   int64
}

// TimerSnapshot is the exported view of a timer
type TimerSnapshot struct {
	Count         int64   `json:"count"`
	TotalTimeMs   int64   `json:"total_time_ms"`
	AverageTimeMs float64 `json:"average_time_ms"`
	MinTimeMs     int64   `json:"min_time_ms"`
	MaxTimeMs     int64   `json:"max_time_ms"`
}

// Metrics is an in-process metrics collector exposed over /metrics
type Metrics struct {
	mu           sync.RWMutex
	counters     map[string]*int64
	gauges       map[string]*int64
	timers       map[string]*timerEntry
	healthChecks map[string]*int64
	startTime    time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		counters:     make(map[string]*int64),
		gauges:       make(map[string]*int64),
		timers:       make(map[string]*timerEntry),
		healthChecks: make(map[string]*int64),
		startTime:    time.Now(),
	}
}

// IncrementCounter increments a counter by 1
func (m *Metrics) IncrementCounter(name string) {
	m.IncrementCounterBy(name, 1)
}

// IncrementCounterBy increments a counter by the specified value
func (m *Metrics) IncrementCounterBy(name string, value int64) {
	atomic.AddInt64(m.counter(name), value)
}

// SetGauge sets a gauge to a specific value
func (m *Metrics) SetGauge(name string, value int64) {
	m.mu.RLock()
	gauge, exists := m.gauges[name]
	m.mu.RUnlock()

	if !exists {
		m.mu.Lock()
		if gauge, exists = m.gauges[name]; !exists {
			var g int64
			gauge = &g
			m.gauges[name] = gauge
		}
		m.mu.Unlock()
	}

	atomic.StoreInt64(gauge, value)
}

// RecordTimer records a timing measurement
func (m *Metrics) RecordTimer(name string, duration time.Duration) {
	durationMs := duration.Milliseconds()

	m.mu.RLock()
	timer, exists := m.timers[name]
	m.mu.RUnlock()

	if !exists {
		m.mu.Lock()
		if timer, exists = m.timers[name]; !exists {
			timer = &timerEntry{minTimeMs: int64(^uint64(0) >> 1)}
			m.timers[name] = timer
		}
		m.mu.Unlock()
	}

	atomic.AddInt64(&timer.count, 1)
	atomic.AddInt64(&timer.totalTimeMs, durationMs)

	for {
		currentMin := atomic.LoadInt64(&timer.minTimeMs)
		if durationMs >= currentMin {
			break
		}
		if atomic.CompareAndSwapInt64(&timer.minTimeMs, currentMin, durationMs) {
			break
		}
	}

	for {
		currentMax := atomic.LoadInt64(&timer.maxTimeMs)
		if durationMs <= currentMax {
			break
		}
		if atomic.CompareAndSwapInt64(&timer.maxTimeMs, currentMax, durationMs) {
			break
		}
	}
}

// SetHealthCheck records the health status of a dependency
func (m *Metrics) SetHealthCheck(name string, healthy bool) {
	var value int64
	if healthy {
		value = 1
	}

	m.mu.RLock()
	check, exists := m.healthChecks[name]
	m.mu.RUnlock()

	if !exists {
		m.mu.Lock()
		if check, exists = m.healthChecks[name]; !exists {
			var c int64
			check = &c
			m.healthChecks[name] = check
		}
		m.mu.Unlock()
	}

	atomic.StoreInt64(check, value)
}

// GetHealthChecks returns the current status of all health checks
func (m *Metrics) GetHealthChecks() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	checks := make(map[string]bool, len(m.healthChecks))
	for name, check := range m.healthChecks {
		checks[name] = atomic.LoadInt64(check) == 1
	}
	return checks
}

// GetAllMetrics returns a snapshot of every metric plus uptime
func (m *Metrics) GetAllMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counters := make(map[string]int64, len(m.counters))
	for name, counter := range m.counters {
		counters[name] = atomic.LoadInt64(counter)
	}

	gauges := make(map[string]int64, len(m.gauges))
	for name, gauge := range m.gauges {
		gauges[name] = atomic.LoadInt64(gauge)
	}

	timers := make(map[string]TimerSnapshot, len(m.timers))
	for name, timer := range m.timers {
		count := atomic.LoadInt64(&timer.count)
		total := atomic.LoadInt64(&timer.totalTimeMs)
		snapshot := TimerSnapshot{
			Count:       count,
			TotalTimeMs: total,
			MinTimeMs:   atomic.LoadInt64(&timer.minTimeMs),
			MaxTimeMs:   atomic.LoadInt64(&timer.maxTimeMs),
		}
		if count > 0 {
			snapshot.AverageTimeMs = float64(total) / float64(count)
		}
		timers[name] = snapshot
	}

	return map[string]interface{}{
		"uptime_seconds": int64(time.Since(m.startTime).Seconds()),
		"counters":       counters,
		"gauges":         gauges,
		"timers":         timers,
	}
}

func (m *Metrics) counter(name string) *int64 {
	m.mu.RLock()
	counter, exists := m.counters[name]
	m.mu.RUnlock()

	if !exists {
		m.mu.Lock()
		if counter, exists = m.counters[name]; !exists {
			var c int64
			counter = &c
			m.counters[name] = counter
		}
		m.mu.Unlock()
	}

	return counter
}
