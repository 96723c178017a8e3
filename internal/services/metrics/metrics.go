// Package metrics counts service operations and cache effectiveness.
package metrics

import (
	"sync"
	"time"
)

// Collector receives operation and cache events from the services.
type Collector interface {
	// Operation metrics
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)

	// Cache metrics
	RecordCacheHit(cacheName string)
	RecordCacheMiss(cacheName string)
}

// Noop is a no-op implementation of Collector
type Noop struct{}

func (Noop) RecordOperationDuration(string, time.Duration) {}
func (Noop) RecordOperationResult(string, string)          {}
func (Noop) RecordCacheHit(string)                         {}
func (Noop) RecordCacheMiss(string)                        {}

// Snapshot is a point-in-time copy of the in-memory counters.
type Snapshot struct {
	Operations  map[string]map[string]int64 `json:"operations"`
	CacheHits   map[string]int64            `json:"cache_hits"`
	CacheMisses map[string]int64            `json:"cache_misses"`
}

// InMemory keeps counters in process for the health endpoint.
type InMemory struct {
	mu          sync.Mutex
	operations  map[string]map[string]int64
	durations   map[string]time.Duration
	cacheHits   map[string]int64
	cacheMisses map[string]int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		operations:  make(map[string]map[string]int64),
		durations:   make(map[string]time.Duration),
		cacheHits:   make(map[string]int64),
		cacheMisses: make(map[string]int64),
	}
}

func (m *InMemory) RecordOperationDuration(operation string, duration time.Duration) {
	m.mu.Lock()
	m.durations[operation] += duration
	m.mu.Unlock()
}

func (m *InMemory) RecordOperationResult(operation, result string) {
	m.mu.Lock()
	if m.operations[operation] == nil {
		m.operations[operation] = make(map[string]int64)
	}
	m.operations[operation][result]++
	m.mu.Unlock()
}

func (m *InMemory) RecordCacheHit(cacheName string) {
	m.mu.Lock()
	m.cacheHits[cacheName]++
	m.mu.Unlock()
}

func (m *InMemory) RecordCacheMiss(cacheName string) {
	m.mu.Lock()
	m.cacheMisses[cacheName]++
	m.mu.Unlock()
}

func (m *InMemory) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Operations:  make(map[string]map[string]int64, len(m.operations)),
		CacheHits:   make(map[string]int64, len(m.cacheHits)),
		CacheMisses: make(map[string]int64, len(m.cacheMisses)),
	}
	for op, results := range m.operations {
		s.Operations[op] = make(map[string]int64, len(results))
		for r, n := range results {
			s.Operations[op][r] = n
		}
	}
	for k, v := range m.cacheHits {
		s.CacheHits[k] = v
	}
	for k, v := range m.cacheMisses {
		s.CacheMisses[k] = v
	}
	return s
}

// Track records the duration and outcome of an operation. Use it as
//
//	defer metrics.Track(c, "create_transaction", time.Now(), &err)
func Track(c Collector, operation string, start time.Time, errp *error) {
	c.RecordOperationDuration(operation, time.Since(start))
	result := "success"
	if errp != nil && *errp != nil {
		result = "error"
	}
	c.RecordOperationResult(operation, result)
}
