package effects

import (
	"sort"
	"time"

	"showroom/internal/tween"
)

// Timers holds deferred callbacks outside the Scheduler. They are polled by the frame loop,
// so callbacks run on the same goroutine as everything else.
//
// Every callback is stamped with the generation current at scheduling time. Invalidate
// bumps the generation, which drops everything a superseded toggle left behind.
type Timers struct {
	clock   tween.Clock
	gen     uint64
	seq     uint64
	pending []*timer
	due     []*timer
}

type timer struct {
	at        time.Time
	seq       uint64
	gen       uint64
	fn        func()
	cancelled bool
}

// Handle cancels one deferred callback.
type Handle struct {
	t *timer
}

// Cancel stops the callback if it has not fired. Safe on a zero Handle.
func (h Handle) Cancel() {
	if h.t != nil {
		h.t.cancelled = true
	}
}

// Valid reports whether the handle refers to a scheduled callback.
func (h Handle) Valid() bool {
	return h.t != nil
}

// NewTimers returns an empty timer set reading time from clock.
func NewTimers(clock tween.Clock) *Timers {
	return &Timers{clock: clock}
}

// After runs fn once, d after now, unless cancelled or invalidated first.
func (t *Timers) After(d time.Duration, fn func()) Handle {
	t.seq++
	tm := &timer{at: t.clock.Now().Add(d), seq: t.seq, gen: t.gen, fn: fn}
	t.pending = append(t.pending, tm)
	return Handle{t: tm}
}

// Invalidate drops every pending callback.
func (t *Timers) Invalidate() {
	t.gen++
	clear(t.pending)
	t.pending = t.pending[:0]
}

// Generation returns the current generation.
func (t *Timers) Generation() uint64 {
	return t.gen
}

// Pending returns the number of callbacks still waiting.
func (t *Timers) Pending() int {
	n := 0
	for _, tm := range t.pending {
		if !tm.cancelled {
			n++
		}
	}
	return n
}

// Poll fires every callback due at now, in due order. A callback that invalidates or
// cancels others stops them from firing in the same poll.
func (t *Timers) Poll(now time.Time) {
	t.due = t.due[:0]
	kept := t.pending[:0]
	for _, tm := range t.pending {
		switch {
		case tm.cancelled:
		case !tm.at.After(now):
			t.due = append(t.due, tm)
		default:
			kept = append(kept, tm)
		}
	}
	clear(t.pending[len(kept):])
	t.pending = kept

	sort.SliceStable(t.due, func(i, j int) bool {
		if t.due[i].at.Equal(t.due[j].at) {
			return t.due[i].seq < t.due[j].seq
		}
		return t.due[i].at.Before(t.due[j].at)
	})
	for _, tm := range t.due {
		if tm.cancelled || tm.gen != t.gen {
			continue
		}
		tm.cancelled = true
		tm.fn()
	}
	clear(t.due)
}
