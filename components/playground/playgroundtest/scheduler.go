// Package playgroundtest provides deterministic collaborators for playground
// tests.
package playgroundtest

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-playground/components/playground"
)

// Epoch is the default start time of a manual scheduler.
var Epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// Scheduler is a manual clock. Scheduled tasks only run inside Advance, in
// due order, on the calling goroutine.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*task
}

type task struct {
	seq      int
	due      time.Time
	fn       func()
	done     bool
	canceled bool
}

var _ playground.Scheduler = (*Scheduler)(nil)

// NewScheduler returns a scheduler starting at Epoch.
func NewScheduler() *Scheduler {
	return &Scheduler{now: Epoch}
}

// Now returns the manual clock time.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Elapsed returns the time advanced since Epoch.
func (s *Scheduler) Elapsed() time.Duration {
	return s.Now().Sub(Epoch)
}

// Schedule records fn to run once the clock reaches now+delay.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) *playground.TaskHandle {
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &task{seq: s.seq, due: s.now.Add(delay), fn: fn}
	s.tasks = append(s.tasks, t)
	return playground.NewTaskHandle(t.due, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t.done || t.canceled {
			return false
		}
		t.canceled = true
		return true
	})
}

// Advance moves the clock forward by d, running every task that falls due.
// Tasks scheduled by fired tasks run too when they fall inside the window. It
// returns the number of tasks run.
func (s *Scheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()
	ran := 0
	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return ran
		}
		next.done = true
		s.now = next.due
		s.mu.Unlock()
		next.fn()
		ran++
	}
}

func (s *Scheduler) nextDueLocked(target time.Time) *task {
	var next *task
	for _, t := range s.tasks {
		if t.done || t.canceled || t.due.After(target) {
			continue
		}
		if next == nil || t.due.Before(next.due) || (t.due.Equal(next.due) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.done && !t.canceled {
			n++
		}
	}
	return n
}

// Sequence returns a Random func that replays values, repeating the last one.
func Sequence(values ...int) func(n int) int {
	var mu sync.Mutex
	idx := 0
	return func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		if len(values) == 0 {
			return 0
		}
		v := values[idx]
		if idx < len(values)-1 {
			idx++
		}
		if n > 0 {
			v %= n
		}
		return v
	}
}

// Recorder captures refresh events.
type Recorder struct {
	mu     sync.Mutex
	events []playground.PlaygroundEvent
}

// PlaygroundUpdated implements playground.RefreshHook.
func (r *Recorder) PlaygroundUpdated(_ context.Context, event playground.PlaygroundEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns the captured events.
func (r *Recorder) Events() []playground.PlaygroundEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]playground.PlaygroundEvent{}, r.events...)
}

// Kinds returns the kinds of the captured events, in order.
func (r *Recorder) Kinds() []playground.EventKind {
	events := r.Events()
	kinds := make([]playground.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}
