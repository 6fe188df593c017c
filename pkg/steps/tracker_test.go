package steps

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a now func that advances by step on each call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		cur := t
		t = t.Add(step)
		return cur
	}
}

func TestTracker_BeginUpdate(t *testing.T) {
	tr := NewTracker()
	tr.now = fixedClock(time.Unix(1000, 0), time.Second)

	h := tr.Begin("load_host_config")
	got := tr.Steps()
	require.Len(t, got, 1)
	assert.Equal(t, StatusStarted, got[0].Status)
	assert.True(t, got[0].CompletedAt.IsZero())

	tr.Update(h, StatusExists)
	got = tr.Steps()
	assert.Equal(t, StatusExists, got[0].Status)
	assert.Equal(t, time.Second, got[0].Elapsed)
	assert.False(t, got[0].CompletedAt.IsZero())
}

func TestTracker_Fail(t *testing.T) {
	tr := NewTracker()
	h := tr.Begin("merge_and_persist")
	tr.Fail(h, errors.New("disk full"))

	got := tr.Steps()
	require.Len(t, got, 1)
	assert.Equal(t, StatusFailed, got[0].Status)
	assert.Equal(t, "disk full", got[0].Err)
}

func TestTracker_InsertionOrder(t *testing.T) {
	tr := NewTracker()
	names := []string{"detect_environment", "ensure_config_dir", "load_host_config"}
	for _, n := range names {
		h := tr.Begin(n)
		tr.Update(h, StatusCompleted)
	}

	got := tr.Steps()
	require.Len(t, got, len(names))
	for i, n := range names {
		assert.Equal(t, n, got[i].Name)
	}
}

func TestTracker_BadHandleIgnored(t *testing.T) {
	tr := NewTracker()
	tr.Update(Handle(5), StatusCompleted)
	tr.Fail(Handle(-1), errors.New("x"))
	assert.Empty(t, tr.Steps())
}

func TestTracker_SnapshotIsCopy(t *testing.T) {
	tr := NewTracker()
	h := tr.Begin("restart_host_app")

	snap := tr.Steps()
	snap[0].Status = StatusFailed

	tr.Update(h, StatusCompleted)
	assert.Equal(t, StatusCompleted, tr.Steps()[0].Status)
}
