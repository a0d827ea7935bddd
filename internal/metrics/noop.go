package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncAccountCreated is a no-op.
func (n *NoopRecorder) IncAccountCreated() {}

// IncSignupRejected is a no-op.
func (n *NoopRecorder) IncSignupRejected(reason string) {}

// ObserveSignupDuration is a no-op.
func (n *NoopRecorder) ObserveSignupDuration(duration time.Duration) {}
