// README: Per-user inactivity countdown keyed by phone number.
package conversation

import (
	"sync"
	"time"
)

// scheduler owns one cancellable timer per user. Touch resets the countdown;
// Cancel is called atomically with session destruction, under the same
// per-user lock the engine holds.
type scheduler struct {
	mu      sync.Mutex
	timeout time.Duration
	timers  map[string]*time.Timer
	fire    func(userID string)
}

func newScheduler(timeout time.Duration, fire func(userID string)) *scheduler {
	return &scheduler{
		timeout: timeout,
		timers:  make(map[string]*time.Timer),
		fire:    fire,
	}
}

func (s *scheduler) Touch(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[userID]; ok {
		t.Stop()
	}
	s.timers[userID] = time.AfterFunc(s.timeout, func() { s.fire(userID) })
}

func (s *scheduler) Cancel(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[userID]; ok {
		t.Stop()
		delete(s.timers, userID)
	}
}
