package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeTimerSource_AdvanceFiresDueTimers(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	clock := NewFakeTimerSource(start)

	var fired []string
	clock.AfterFunc(2*time.Hour, func() { fired = append(fired, "later") })
	clock.AfterFunc(30*time.Minute, func() { fired = append(fired, "sooner") })

	clock.Advance(time.Hour)
	assert.Equal(t, []string{"sooner"}, fired)
	assert.Equal(t, 1, clock.PendingTimers())

	clock.Advance(2 * time.Hour)
	assert.Equal(t, []string{"sooner", "later"}, fired)
	assert.Zero(t, clock.PendingTimers())
}

func TestFakeTimerSource_CallbackSeesDeadlineAsNow(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	clock := NewFakeTimerSource(start)

	var observed time.Time
	clock.AfterFunc(45*time.Minute, func() { observed = clock.Now() })

	clock.Advance(2 * time.Hour)
	assert.Equal(t, start.Add(45*time.Minute), observed)
	assert.Equal(t, start.Add(2*time.Hour), clock.Now())
}

func TestFakeTimerSource_EqualDeadlinesFireInArmingOrder(t *testing.T) {
	clock := NewFakeTimerSource(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	var fired []int
	for i := 1; i <= 4; i++ {
		i := i
		clock.AfterFunc(time.Minute, func() { fired = append(fired, i) })
	}

	clock.Advance(time.Minute)
	assert.Equal(t, []int{1, 2, 3, 4}, fired)
}

func TestFakeTimerSource_StoppedTimerDoesNotFire(t *testing.T) {
	clock := NewFakeTimerSource(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	fired := false
	handle := clock.AfterFunc(time.Minute, func() { fired = true })

	assert.True(t, handle.Stop())
	clock.Advance(time.Hour)
	assert.False(t, fired)

	// A second stop reports the timer already dead.
	assert.False(t, handle.Stop())
}

func TestFakeTimerSource_CallbackMayArmNewTimers(t *testing.T) {
	clock := NewFakeTimerSource(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	var fired []string
	clock.AfterFunc(time.Minute, func() {
		fired = append(fired, "first")
		clock.AfterFunc(time.Minute, func() { fired = append(fired, "chained") })
	})

	// The chained timer lands inside the window, so one Advance covers both.
	clock.Advance(5 * time.Minute)
	assert.Equal(t, []string{"first", "chained"}, fired)
}

func TestFakeTimerSource_NegativeDelayFiresImmediately(t *testing.T) {
	clock := NewFakeTimerSource(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	fired := false
	clock.AfterFunc(-time.Hour, func() { fired = true })

	clock.Advance(0)
	assert.True(t, fired)
}

func TestRealTimerSource_AfterFunc(t *testing.T) {
	source := NewRealTimerSource()

	require.WithinDuration(t, time.Now(), source.Now(), time.Second)

	done := make(chan struct{})
	handle := source.AfterFunc(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
	assert.False(t, handle.Stop())
}

func TestRealTimerSource_Stop(t *testing.T) {
	source := NewRealTimerSource()

	handle := source.AfterFunc(time.Hour, func() { t.Error("should not fire") })
	assert.True(t, handle.Stop())
}
