package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups            uint64
	LoginSuccesses     uint64
	LoginFailures      uint64
	PastesCreatedAnon  uint64
	PastesCreatedOwned uint64
	PastesDeleted      uint64
	PasteCacheHits     uint64
	PasteCacheMisses   uint64
	PasteFetchCount    uint64
	PasteFetchTotalNs  int64
}

// InMemoryRecorder keeps counters in process memory. It backs the /metrics
// endpoint and is used directly in tests.
type InMemoryRecorder struct {
	signups            atomic.Uint64
	loginSuccesses     atomic.Uint64
	loginFailures      atomic.Uint64
	pastesCreatedAnon  atomic.Uint64
	pastesCreatedOwned atomic.Uint64
	pastesDeleted      atomic.Uint64
	pasteCacheHits     atomic.Uint64
	pasteCacheMisses   atomic.Uint64
	pasteFetchCount    atomic.Uint64
	pasteFetchTotalNs  atomic.Int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:            m.signups.Load(),
		LoginSuccesses:     m.loginSuccesses.Load(),
		LoginFailures:      m.loginFailures.Load(),
		PastesCreatedAnon:  m.pastesCreatedAnon.Load(),
		PastesCreatedOwned: m.pastesCreatedOwned.Load(),
		PastesDeleted:      m.pastesDeleted.Load(),
		PasteCacheHits:     m.pasteCacheHits.Load(),
		PasteCacheMisses:   m.pasteCacheMisses.Load(),
		PasteFetchCount:    m.pasteFetchCount.Load(),
		PasteFetchTotalNs:  m.pasteFetchTotalNs.Load(),
	}
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	m.signups.Add(1)
}

// IncLogin increments the login counter for the outcome.
func (m *InMemoryRecorder) IncLogin(outcome string) {
	if outcome == LoginSuccess {
		m.loginSuccesses.Add(1)
		return
	}
	m.loginFailures.Add(1)
}

// IncPasteCreated increments the created counter for anonymous or owned pastes.
func (m *InMemoryRecorder) IncPasteCreated(anonymous bool) {
	if anonymous {
		m.pastesCreatedAnon.Add(1)
		return
	}
	m.pastesCreatedOwned.Add(1)
}

// IncPasteDeleted increments the deleted counter.
func (m *InMemoryRecorder) IncPasteDeleted() {
	m.pastesDeleted.Add(1)
}

// IncPasteCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncPasteCacheHit() {
	m.pasteCacheHits.Add(1)
}

// IncPasteCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncPasteCacheMiss() {
	m.pasteCacheMisses.Add(1)
}

// ObservePasteFetchDuration records how long a public paste read took.
func (m *InMemoryRecorder) ObservePasteFetchDuration(duration time.Duration) {
	m.pasteFetchCount.Add(1)
	m.pasteFetchTotalNs.Add(duration.Nanoseconds())
}
