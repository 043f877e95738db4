// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Login outcomes.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// Account metrics
	IncSignup()
	IncLogin(outcome string) // outcome: LoginSuccess or LoginFailure

	// Paste metrics
	IncPasteCreated(anonymous bool)
	IncPasteDeleted()
	IncPasteCacheHit()
	IncPasteCacheMiss()
	ObservePasteFetchDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
