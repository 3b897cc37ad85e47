package schedule

import (
	"slices"
	"testing"
	"time"
)

func TestAfterFiresOnce(t *testing.T) {
	s := New()
	fired := 0
	s.After(100*time.Millisecond, func() { fired++ })

	s.Advance(99 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early: %d", fired)
	}
	s.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d after due time, want 1", fired)
	}
	s.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("one-shot fired again: %d", fired)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestEveryFiresPerInterval(t *testing.T) {
	s := New()
	fired := 0
	s.Every(1500*time.Millisecond, func() { fired++ })

	s.Advance(4 * time.Second)
	if fired != 2 {
		t.Fatalf("fired = %d after 4s, want 2", fired)
	}
	s.Advance(500 * time.Millisecond)
	if fired != 3 {
		t.Fatalf("fired = %d after 4.5s, want 3", fired)
	}
}

func TestCancel(t *testing.T) {
	s := New()
	fired := false
	h := s.After(time.Second, func() { fired = true })

	if !s.Pending(h) {
		t.Fatal("task should be pending")
	}
	if !s.Cancel(h) {
		t.Fatal("Cancel should report a pending task")
	}
	if s.Cancel(h) {
		t.Fatal("second Cancel should report false")
	}
	s.Advance(2 * time.Second)
	if fired {
		t.Fatal("cancelled task fired")
	}
	if s.Cancel(0) {
		t.Fatal("zero handle should never cancel anything")
	}
}

func TestPauseResume(t *testing.T) {
	s := New()
	fired := 0
	h := s.Every(time.Second, func() { fired++ })

	s.Advance(600 * time.Millisecond)
	s.Pause(h)
	if !s.Paused(h) {
		t.Fatal("Paused = false after Pause")
	}
	s.Advance(10 * time.Second)
	if fired != 0 {
		t.Fatalf("paused task fired %d times", fired)
	}

	s.Resume(h)
	s.Advance(399 * time.Millisecond)
	if fired != 0 {
		t.Fatal("resumed task fired before its remaining time")
	}
	s.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1 after remaining time elapsed", fired)
	}
}

func TestFiringOrder(t *testing.T) {
	s := New()
	var order []string
	s.After(300*time.Millisecond, func() { order = append(order, "c") })
	s.After(100*time.Millisecond, func() { order = append(order, "a") })
	s.After(100*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(time.Second)
	if want := []string{"a", "b", "c"}; !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestCallbackMaySchedule(t *testing.T) {
	s := New()
	var at []time.Duration
	s.After(100*time.Millisecond, func() {
		at = append(at, s.Now())
		s.After(50*time.Millisecond, func() { at = append(at, s.Now()) })
	})

	s.Advance(200 * time.Millisecond)
	want := []time.Duration{100 * time.Millisecond, 150 * time.Millisecond}
	if !slices.Equal(at, want) {
		t.Fatalf("fire times = %v, want %v", at, want)
	}
	if s.Now() != 200*time.Millisecond {
		t.Fatalf("Now = %v, want 200ms", s.Now())
	}
}

func TestCallbackMayCancelOther(t *testing.T) {
	s := New()
	fired := false
	var victim Handle
	s.After(100*time.Millisecond, func() { s.Cancel(victim) })
	victim = s.After(150*time.Millisecond, func() { fired = true })

	s.Advance(time.Second)
	if fired {
		t.Fatal("task cancelled by an earlier callback still fired")
	}
}
