package playground

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler runs callbacks once after a delay. Each scheduled task is
// independent of every other task.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) *TaskHandle
	Now() time.Time
}

// TaskHandle identifies a scheduled task. Tasks always run to completion
// unless Cancel is called before they fire.
type TaskHandle struct {
	ID     string
	Due    time.Time
	cancel func() bool
}

// NewTaskHandle builds a handle around a cancel function. Scheduler
// implementations use it to expose their tasks.
func NewTaskHandle(due time.Time, cancel func() bool) *TaskHandle {
	return &TaskHandle{ID: uuid.NewString(), Due: due, cancel: cancel}
}

// Cancel stops the task if it has not fired yet. It reports whether the task
// was stopped.
func (h *TaskHandle) Cancel() bool {
	if h == nil || h.cancel == nil {
		return false
	}
	return h.cancel()
}

// TimerScheduler schedules tasks on the runtime timer wheel.
type TimerScheduler struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewTimerScheduler builds the production scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{pending: map[string]*time.Timer{}}
}

// Now returns the wall clock time.
func (s *TimerScheduler) Now() time.Time { return time.Now() }

// Schedule runs fn on its own goroutine once delay has elapsed.
func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) *TaskHandle {
	if delay < 0 {
		delay = 0
	}
	var handle *TaskHandle
	handle = NewTaskHandle(time.Now().Add(delay), func() bool {
		s.mu.Lock()
		timer, ok := s.pending[handle.ID]
		delete(s.pending, handle.ID)
		s.mu.Unlock()
		return ok && timer.Stop()
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[handle.ID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, handle.ID)
		s.mu.Unlock()
		fn()
	})
	return handle
}

// Pending returns the number of tasks that have not fired yet.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
