// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Signup rejection reasons.
const (
	ReasonMissingParam = "missing_param"
	ReasonInvalidParam = "invalid_param"
	ReasonServerError  = "server_error"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account store metrics
	IncAccountCreated()

	// Signup endpoint metrics
	IncSignupRejected(reason string) // reason: one of the Reason* constants
	ObserveSignupDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
