package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncSignup()                                       {}
func (n *NoopRecorder) IncLogin(outcome string)                          {}
func (n *NoopRecorder) IncPasteCreated(anonymous bool)                   {}
func (n *NoopRecorder) IncPasteDeleted()                                 {}
func (n *NoopRecorder) IncPasteCacheHit()                                {}
func (n *NoopRecorder) IncPasteCacheMiss()                               {}
func (n *NoopRecorder) ObservePasteFetchDuration(duration time.Duration) {}
