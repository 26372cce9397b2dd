package tween

import (
	"slices"
	"time"
)

// Scheduler owns the registry of active transitions and advances all of them once per frame.
// It is not safe for concurrent use: the frame loop is its only caller.
type Scheduler struct {
	clock Clock
	tasks []*Task
	// snapshot is reused by Tick so callbacks may mutate tasks while we iterate.
	snapshot []*Task
	ticks    uint64
}

// NewScheduler returns an empty scheduler stamping start times from clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Schedule registers t, stamping its start time. A registered task with the same ID is
// removed first without running its OnComplete.
func (s *Scheduler) Schedule(t *Task) *Task {
	s.Cancel(t.ID)
	t.start = s.clock.Now()
	s.tasks = append(s.tasks, t)
	return t
}

// Cancel removes the task registered under id without running OnComplete. The owner's value
// is left wherever the last tick put it. Returns false if nothing was registered.
func (s *Scheduler) Cancel(id string) bool {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = slices.Delete(s.tasks, i, i+1)
			return true
		}
	}
	return false
}

// Active reports whether a task is registered under id.
func (s *Scheduler) Active(id string) bool {
	for _, t := range s.tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of registered tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Ticks returns how many times Tick has run.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Clear drops every task without completing any.
func (s *Scheduler) Clear() {
	clear(s.tasks)
	s.tasks = s.tasks[:0]
}

// Tick advances every registered task using the same now sample. Completed tasks are
// deregistered before their OnComplete runs, so completion callbacks may schedule a
// follow-up under the same ID. Tasks scheduled during this tick first advance next tick.
func (s *Scheduler) Tick(now time.Time) {
	s.ticks++
	s.snapshot = append(s.snapshot[:0], s.tasks...)
	for _, t := range s.snapshot {
		// Superseded or cancelled by an earlier callback in this tick.
		if !s.holds(t) {
			continue
		}
		p := t.progress(now)
		if p < 1 {
			if t.Step != nil {
				t.Step(t.Easing.Apply(p))
			}
			continue
		}
		if t.Step != nil {
			t.Step(1)
		}
		s.remove(t)
		if t.OnComplete != nil {
			t.OnComplete()
		}
	}
	clear(s.snapshot)
}

func (s *Scheduler) holds(t *Task) bool {
	for _, r := range s.tasks {
		if r == t {
			return true
		}
	}
	return false
}

func (s *Scheduler) remove(t *Task) {
	for i, r := range s.tasks {
		if r == t {
			s.tasks = slices.Delete(s.tasks, i, i+1)
			return
		}
	}
}
