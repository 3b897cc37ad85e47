package main

import (
	"testing"
	"time"
)

func TestGateCapacity(t *testing.T) {
	g := newGate(1000, 1000, 2)
	now := time.Now()

	r1, reason := g.admit(now)
	if r1 == nil {
		t.Fatalf("first session rejected: %s", reason)
	}
	r2, _ := g.admit(now)
	if r2 == nil {
		t.Fatal("second session rejected")
	}
	if r, reason := g.admit(now); r != nil || reason != reasonCapacity {
		t.Fatalf("third session admitted, reason %q", reason)
	}

	r1()
	r1() // releasing twice frees one slot only
	if r, _ := g.admit(now); r == nil {
		t.Fatal("slot not freed")
	}
	if r, reason := g.admit(now); r != nil || reason != reasonCapacity {
		t.Fatal("double release freed two slots")
	}
}

func TestGateRateLimit(t *testing.T) {
	g := newGate(1, 2, 100)
	now := time.Now()

	for i := range 2 {
		if r, reason := g.admit(now); r == nil {
			t.Fatalf("burst session %d rejected: %s", i, reason)
		}
	}
	if r, reason := g.admit(now); r != nil || reason != reasonRateLimit {
		t.Fatalf("session over the burst admitted, reason %q", reason)
	}
	if r, _ := g.admit(now.Add(time.Second)); r == nil {
		t.Fatal("token not refilled after a second")
	}
}
