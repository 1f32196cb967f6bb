package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func TestDebouncerEmitsLastValueOfBurstOnce(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()
	rec := &recorder{}

	// Burst arrives faster than the delay
	d.Trigger("A", rec.record)
	time.Sleep(5 * time.Millisecond)
	d.Trigger("Ac", rec.record)
	time.Sleep(5 * time.Millisecond)
	d.Trigger("Acm", rec.record)

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) > 0
	}, time.Second, 5*time.Millisecond)

	// Wait past another full window to catch duplicate emissions
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"Acm"}, rec.snapshot())
}

func TestDebouncerSeparateBurstsEmitSeparately(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()
	rec := &recorder{}

	d.Trigger("first", rec.record)
	time.Sleep(60 * time.Millisecond)
	d.Trigger("second", rec.record)
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebouncerStopPreventsPendingEmission(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	rec := &recorder{}

	d.Trigger("doomed", rec.record)
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot(), "no orphaned callback after Stop")

	// Triggers after Stop are ignored too
	d.Trigger("late", rec.record)
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncerFlushCancelsWithoutStopping(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()
	rec := &recorder{}

	d.Trigger("cancelled", rec.record)
	d.Flush()
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	d.Trigger("kept", rec.record)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"kept"}, rec.snapshot())
}
