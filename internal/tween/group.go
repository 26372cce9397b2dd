package tween

// Group ties several tasks to one logical completion. The callback fires once, after every
// member has completed. If any member is cancelled or superseded the group never fires.
type Group struct {
	s       *Scheduler
	name    string
	members []*Task
	pending int
	sealed  bool
	done    bool
	onDone  func()
}

// Group starts a new group. Add members, then Seal.
func (s *Scheduler) Group(name string, onDone func()) *Group {
	return &Group{s: s, name: name, onDone: onDone}
}

// Name returns the group's label.
func (g *Group) Name() string {
	return g.name
}

// Add schedules t as a member of the group.
func (g *Group) Add(t *Task) *Task {
	g.pending++
	g.members = append(g.members, t)
	inner := t.OnComplete
	t.OnComplete = func() {
		if inner != nil {
			inner()
		}
		g.pending--
		g.check()
	}
	return g.s.Schedule(t)
}

// Seal marks the membership final. An empty group completes immediately.
func (g *Group) Seal() {
	g.sealed = true
	g.check()
}

// Cancel removes every member still registered; the completion callback will not run.
// Tasks that have since been superseded under the same ID belong to someone else and stay.
func (g *Group) Cancel() {
	g.done = true
	for _, t := range g.members {
		g.s.remove(t)
	}
}

// Done reports whether the group has completed or been cancelled.
func (g *Group) Done() bool {
	return g.done
}

// Size returns the number of members added.
func (g *Group) Size() int {
	return len(g.members)
}

func (g *Group) check() {
	if !g.sealed || g.done || g.pending > 0 {
		return
	}
	g.done = true
	if g.onDone != nil {
		g.onDone()
	}
}
