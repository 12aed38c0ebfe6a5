package service

import (
	"sync"
	"time"
)

// DeliveryScheduler runs the simulated sent->delivered transitions.
// Each pending transition is a cancellable timer keyed by message id, so
// deleting a message (or its conversation) before the delay elapses stops
// the callback from mutating freed state.
type DeliveryScheduler struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
}

func NewDeliveryScheduler(delay time.Duration) *DeliveryScheduler {
	return &DeliveryScheduler{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arms a timer for the given message. An already pending timer for
// the same id is replaced.
func (s *DeliveryScheduler) Schedule(messageID string, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[messageID]; ok {
		t.Stop()
	}
	s.timers[messageID] = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		delete(s.timers, messageID)
		s.mu.Unlock()
		fire()
	})
}

// Cancel stops the pending transition for a message, if any.
func (s *DeliveryScheduler) Cancel(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[messageID]; ok {
		t.Stop()
		delete(s.timers, messageID)
	}
}

// Pending reports the number of armed timers.
func (s *DeliveryScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending transition. Used at shutdown.
func (s *DeliveryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
