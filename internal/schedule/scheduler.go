// Package schedule runs callbacks against simulated time.
//
// A Scheduler owns no goroutines. Time only moves when Advance is called,
// which makes every timer in a session deterministic and single-threaded.
package schedule

import "time"

// Handle identifies a scheduled task. The zero Handle never refers to a task.
type Handle uint64

type task struct {
	id        Handle
	due       time.Duration // Absolute simulated time of the next firing
	interval  time.Duration // Repeat period; 0 for one-shot tasks
	remaining time.Duration // Time left until due, captured while paused
	paused    bool
	fn        func()
}

// Scheduler is a list of pending tasks polled once per tick.
type Scheduler struct {
	now    time.Duration
	nextID Handle
	tasks  []*task
}

// New creates an empty scheduler at simulated time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of pending tasks, paused ones included.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// After runs fn once, delay from now.
func (s *Scheduler) After(delay time.Duration, fn func()) Handle {
	return s.add(delay, 0, fn)
}

// Every runs fn each interval, starting one interval from now.
// A non-positive interval is treated as one nanosecond.
func (s *Scheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return s.add(interval, interval, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.tasks = append(s.tasks, &task{
		id:       s.nextID,
		due:      s.now + delay,
		interval: interval,
		fn:       fn,
	})
	return s.nextID
}

// Cancel removes the task. It reports whether the task was still pending.
func (s *Scheduler) Cancel(h Handle) bool {
	for i, t := range s.tasks {
		if t.id == h {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether h refers to a task that has not fired (one-shot)
// or been cancelled.
func (s *Scheduler) Pending(h Handle) bool {
	return s.find(h) != nil
}

// Pause freezes the task's countdown until Resume.
func (s *Scheduler) Pause(h Handle) {
	t := s.find(h)
	if t == nil || t.paused {
		return
	}
	t.paused = true
	t.remaining = t.due - s.now
}

// Resume restarts a paused task's countdown where it stopped.
func (s *Scheduler) Resume(h Handle) {
	t := s.find(h)
	if t == nil || !t.paused {
		return
	}
	t.paused = false
	t.due = s.now + t.remaining
}

// Paused reports whether the task exists and is paused.
func (s *Scheduler) Paused(h Handle) bool {
	t := s.find(h)
	return t != nil && t.paused
}

// Advance moves simulated time forward by dt, firing due tasks in due-time
// order (creation order on ties). Callbacks may schedule or cancel tasks;
// anything they schedule inside the window fires in the same call.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	end := s.now + dt

	for {
		t := s.nextDue(end)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			s.Cancel(t.id)
		}
		t.fn()
	}

	s.now = end
}

// nextDue returns the earliest running task due at or before end.
func (s *Scheduler) nextDue(end time.Duration) *task {
	var next *task
	for _, t := range s.tasks {
		if t.paused || t.due > end {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.id < next.id) {
			next = t
		}
	}
	return next
}

func (s *Scheduler) find(h Handle) *task {
	if h == 0 {
		return nil
	}
	for _, t := range s.tasks {
		if t.id == h {
			return t
		}
	}
	return nil
}
