package scheduler

import (
	"sort"
	"sync"
	"time"
)

// FakeTimerSource is a TimerSource driven by virtual time. Advance moves the
// clock forward and fires due timers synchronously, in deadline order with
// arming order breaking ties. Intended for tests.
type FakeTimerSource struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	source   *FakeTimerSource
	deadline time.Time
	seq      int
	fn       func()
	stopped  bool
	fired    bool
}

// NewFakeTimerSource creates a fake clock starting at the given instant.
func NewFakeTimerSource(start time.Time) *FakeTimerSource {
	return &FakeTimerSource{now: start}
}

func (f *FakeTimerSource) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *FakeTimerSource) Since(t time.Time) time.Duration {
	return f.Now().Sub(t)
}

func (f *FakeTimerSource) AfterFunc(d time.Duration, fn func()) TimerHandle {
	f.mu.Lock()
	defer f.mu.Unlock()

	if d < 0 {
		d = 0
	}

	f.seq++
	timer := &fakeTimer{
		source:   f,
		deadline: f.now.Add(d),
		seq:      f.seq,
		fn:       fn,
	}
	f.timers = append(f.timers, timer)
	return timer
}

// Advance moves virtual time forward by d, firing every timer whose deadline
// falls inside the window. Callbacks run synchronously on the caller's
// goroutine and may arm new timers; those fire too if they land in the
// window.
func (f *FakeTimerSource) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)

	for {
		timer := f.popDueLocked(target)
		if timer == nil {
			break
		}

		if timer.deadline.After(f.now) {
			f.now = timer.deadline
		}

		// Release the lock while running the callback: callbacks re-enter
		// the source through Now and AfterFunc.
		f.mu.Unlock()
		timer.fn()
		f.mu.Lock()
	}

	f.now = target
	f.mu.Unlock()
}

// popDueLocked removes and returns the earliest unstopped timer with a
// deadline at or before target, or nil.
func (f *FakeTimerSource) popDueLocked(target time.Time) *fakeTimer {
	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].deadline.Equal(f.timers[j].deadline) {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].deadline.Before(f.timers[j].deadline)
	})

	for i, timer := range f.timers {
		if timer.stopped || timer.fired {
			continue
		}
		if timer.deadline.After(target) {
			return nil
		}
		timer.fired = true
		f.timers = append(f.timers[:i], f.timers[i+1:]...)
		return timer
	}

	return nil
}

// PendingTimers returns the number of armed, unfired timers.
func (f *FakeTimerSource) PendingTimers() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, timer := range f.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

func (t *fakeTimer) Stop() bool {
	t.source.mu.Lock()
	defer t.source.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
