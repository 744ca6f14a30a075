// Package task provides cancellable single-flight scheduled callbacks.
package task

import (
	"sync"
	"time"
)

// Single runs at most one pending callback at a time. Scheduling while a
// callback is pending cancels the pending one first, so only the most recent
// schedule ever fires. The sheet engine uses one Single per deferred
// mechanism: the nested repin task, the animation-end task, the background
// cleanup timer, and the position-fixer settle check.
type Single struct {
	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// Schedule arranges for fn to run after d, replacing any pending callback.
func (s *Single) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	seq := s.seq

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		// Only the most recently scheduled callback may run. Stop() can
		// return false when the timer already fired, so the timer handle
		// alone is not enough to tell a stale callback from a live one.
		if seq != s.seq {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending callback, including one whose timer has already
// fired but whose body has not yet run.
func (s *Single) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a callback is currently scheduled.
func (s *Single) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}
