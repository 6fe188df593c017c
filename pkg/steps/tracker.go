// Package steps records an ordered diagnostic log of setup phases.
// The tracker is a side log only: orchestration control flow never
// reads it back to make decisions.
package steps

import "time"

// Status is the lifecycle state of a recorded step.
type Status string

const (
	StatusStarted        Status = "started"
	StatusCompleted      Status = "completed"
	StatusFailed         Status = "failed"
	StatusSkipped        Status = "skipped"
	StatusNoProcessFound Status = "no_process_found"
	StatusCreated        Status = "created"
	StatusExists         Status = "exists"
	StatusCreateFailed   Status = "create_failed"
)

// terminal reports whether a status ends a step.
func (s Status) terminal() bool {
	return s != StatusStarted
}

// Step is one entry in the append-only step log.
type Step struct {
	Name        string
	Status      Status
	StartedAt   time.Time
	CompletedAt time.Time
	Elapsed     time.Duration
	Err         string
}

// Handle identifies a step by its insertion index.
type Handle int

// Tracker accumulates steps in insertion order. Single-writer; none of
// its operations can fail. Out-of-range handles are ignored.
type Tracker struct {
	steps []Step
	now   func() time.Time
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Begin appends a step in the started state and returns its handle.
func (t *Tracker) Begin(name string) Handle {
	t.steps = append(t.steps, Step{
		Name:      name,
		Status:    StatusStarted,
		StartedAt: t.now(),
	})
	return Handle(len(t.steps) - 1)
}

// Update transitions a step to the given status. Terminal statuses
// stamp the completion time and elapsed duration.
func (t *Tracker) Update(h Handle, status Status) {
	t.Finish(h, status, nil)
}

// Fail marks a step failed and records the error text.
func (t *Tracker) Fail(h Handle, err error) {
	t.Finish(h, StatusFailed, err)
}

// Finish transitions a step to status and records err's text when
// non-nil. Terminal statuses stamp the completion time and elapsed
// duration.
func (t *Tracker) Finish(h Handle, status Status, err error) {
	if int(h) < 0 || int(h) >= len(t.steps) {
		return
	}
	st := &t.steps[h]
	st.Status = status
	if err != nil {
		st.Err = err.Error()
	}
	if status.terminal() {
		st.CompletedAt = t.now()
		st.Elapsed = st.CompletedAt.Sub(st.StartedAt)
	}
}

// Steps returns a snapshot of the log in insertion order.
func (t *Tracker) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}
