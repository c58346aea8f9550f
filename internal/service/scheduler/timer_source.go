package scheduler

import (
	"time"
)

//go:generate mockgen -destination=./mocks/mock_timer_source.go -package=mocks github.com/Mailcadence/mailcadence/internal/service/scheduler TimerSource

// Clock provides the current time so tests can drive virtual time.
type Clock interface {
	// Now returns the current time
	Now() time.Time

	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration
}

// TimerHandle is a cancellable one-shot timer owned by the scheduler.
type TimerHandle interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// or was stopped.
	Stop() bool
}

// TimerSource is the clock plus the ability to schedule one-shot callbacks.
// Implementations must fire callbacks with non-decreasing deadlines in
// arming order, which the scheduler relies on for per-sender dispatch order.
type TimerSource interface {
	Clock

	// AfterFunc runs fn on its own goroutine after d has elapsed.
	// A non-positive d fires as soon as possible.
	AfterFunc(d time.Duration, fn func()) TimerHandle
}

// RealTimerSource is the default implementation backed by the system clock.
type RealTimerSource struct{}

// NewRealTimerSource creates a new RealTimerSource
func NewRealTimerSource() TimerSource {
	return &RealTimerSource{}
}

func (rts *RealTimerSource) Now() time.Time {
	return time.Now()
}

func (rts *RealTimerSource) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (rts *RealTimerSource) AfterFunc(d time.Duration, fn func()) TimerHandle {
	if d < 0 {
		d = 0
	}
	return &realTimerHandle{timer: time.AfterFunc(d, fn)}
}

type realTimerHandle struct {
	timer *time.Timer
}

func (h *realTimerHandle) Stop() bool {
	return h.timer.Stop()
}
