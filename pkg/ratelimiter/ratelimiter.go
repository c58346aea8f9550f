package ratelimiter

import (
	"sync"
	"time"
)

// WindowPolicy defines one rolling window enforced for every key.
type WindowPolicy struct {
	Name      string
	MaxEvents int
	Window    time.Duration
}

// SlidingWindows is an in-memory rate tracker with several concurrent
// rolling windows per key. A key (typically a sender id) is over its
// envelope as soon as any configured window is full.
//
// Events are recorded explicitly with Record, so callers can count only
// completed operations:
//
//	rl := ratelimiter.NewSlidingWindows(
//		ratelimiter.WindowPolicy{Name: "minute", MaxEvents: 10, Window: time.Minute},
//		ratelimiter.WindowPolicy{Name: "hour", MaxEvents: 200, Window: time.Hour},
//	)
//
//	if rl.Exceeded(senderID) {
//		return ErrAntiSpam
//	}
//	// ... perform the send ...
//	rl.Record(senderID)
type SlidingWindows struct {
	mu          sync.RWMutex
	policies    []WindowPolicy
	events      map[string][]time.Time // key -> timestamps of recorded events
	stopCleanup chan struct{}
	stopped     bool
}

// NewSlidingWindows creates a tracker enforcing the given window policies.
// A background goroutine evicts keys with no recent events; call Stop when
// the tracker is no longer needed.
func NewSlidingWindows(policies ...WindowPolicy) *SlidingWindows {
	rl := &SlidingWindows{
		policies:    policies,
		events:      make(map[string][]time.Time),
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Exceeded reports whether any configured window for the key is full.
// A tracker with no policies never rejects.
func (rl *SlidingWindows) Exceeded(key string) bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	now := time.Now()
	timestamps := rl.events[key]

	for _, policy := range rl.policies {
		cutoff := now.Add(-policy.Window)
		count := 0
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				count++
			}
		}
		if count >= policy.MaxEvents {
			return true
		}
	}

	return false
}

// Record registers one completed event for the key at the current time.
func (rl *SlidingWindows) Record(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	// Drop timestamps older than the widest window while we hold the lock.
	cutoff := now.Add(-rl.widestWindow())
	timestamps := rl.events[key]
	valid := make([]time.Time, 0, len(timestamps)+1)
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	rl.events[key] = append(valid, now)
}

// Count returns the number of recorded events for the key inside the named
// window, or 0 if no such policy exists.
func (rl *SlidingWindows) Count(policyName, key string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	for _, policy := range rl.policies {
		if policy.Name != policyName {
			continue
		}
		cutoff := time.Now().Add(-policy.Window)
		count := 0
		for _, ts := range rl.events[key] {
			if ts.After(cutoff) {
				count++
			}
		}
		return count
	}

	return 0
}

// Reset clears all recorded events for the key.
func (rl *SlidingWindows) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.events, key)
}

func (rl *SlidingWindows) widestWindow() time.Duration {
	var widest time.Duration
	for _, policy := range rl.policies {
		if policy.Window > widest {
			widest = policy.Window
		}
	}
	return widest
}

// cleanup periodically evicts keys whose events have all aged out of the
// widest window, so idle senders do not accumulate memory.
func (rl *SlidingWindows) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.widestWindow())
			for key, timestamps := range rl.events {
				hasRecent := false
				for _, ts := range timestamps {
					if ts.After(cutoff) {
						hasRecent = true
						break
					}
				}
				if !hasRecent {
					delete(rl.events, key)
				}
			}
			rl.mu.Unlock()

		case <-rl.stopCleanup:
			return
		}
	}
}

// Stop terminates the background cleanup goroutine. Safe to call twice.
func (rl *SlidingWindows) Stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.stopped {
		close(rl.stopCleanup)
		rl.stopped = true
	}
}
