package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AccountsCreated       uint64
	SignupsMissingParam   uint64
	SignupsInvalidParam   uint64
	SignupsServerError    uint64
	SignupDurationCount   uint64
	SignupDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory, safe for concurrent use.
type InMemoryRecorder struct {
	accountsCreated       uint64
	signupsMissingParam   uint64
	signupsInvalidParam   uint64
	signupsServerError    uint64
	signupDurationCount   uint64
	signupDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		AccountsCreated:       atomic.LoadUint64(&m.accountsCreated),
		SignupsMissingParam:   atomic.LoadUint64(&m.signupsMissingParam),
		SignupsInvalidParam:   atomic.LoadUint64(&m.signupsInvalidParam),
		SignupsServerError:    atomic.LoadUint64(&m.signupsServerError),
		SignupDurationCount:   atomic.LoadUint64(&m.signupDurationCount),
		SignupDurationTotalNs: atomic.LoadInt64(&m.signupDurationTotalNs),
	}
}

// IncAccountCreated increments the accounts created counter.
func (m *InMemoryRecorder) IncAccountCreated() {
	atomic.AddUint64(&m.accountsCreated, 1)
}

// IncSignupRejected increments the rejection counter for reason.
// Unknown reasons are ignored.
func (m *InMemoryRecorder) IncSignupRejected(reason string) {
	switch reason {
	case ReasonMissingParam:
		atomic.AddUint64(&m.signupsMissingParam, 1)
	case ReasonInvalidParam:
		atomic.AddUint64(&m.signupsInvalidParam, 1)
	case ReasonServerError:
		atomic.AddUint64(&m.signupsServerError, 1)
	}
}

// ObserveSignupDuration records signup handling duration.
func (m *InMemoryRecorder) ObserveSignupDuration(duration time.Duration) {
	atomic.AddUint64(&m.signupDurationCount, 1)
	atomic.AddInt64(&m.signupDurationTotalNs, duration.Nanoseconds())
}
