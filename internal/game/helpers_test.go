package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/object"
	"github.com/tomz197/nyanko/internal/storage"
)

const frame = 16 * time.Millisecond

// testTuning is the stock balance without gravity, so hand-placed
// entities stay where a test puts them.
func testTuning() config.Tuning {
	t := config.DefaultTuning()
	t.Gravity = 0
	return t
}

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(typ EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func (r *recorder) last(typ EventType) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == typ {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func newTestGame(t *testing.T, store storage.Store) (*Game, *recorder) {
	t.Helper()
	rec := &recorder{}
	g := New(Options{
		Tuning:   testTuning(),
		Store:    store,
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Observer: rec,
	})
	return g, rec
}

// addTarget places a stationary target.
func addTarget(s *Session, x, y float64) *object.Entity {
	e := object.NewTarget(s.tuning, x, y, 0, 0)
	s.Targets.Add(e)
	return e
}

// knockDown drops a target onto the player and runs one tick.
func knockDown(t *testing.T, g *Game) {
	t.Helper()
	s := g.Session()
	addTarget(s, s.Player.X, s.Player.Y)
	g.Tick(frame, Held{})
	if s.State != StateDown {
		t.Fatalf("state = %v after collision, want down", s.State)
	}
}

// mashN sends n key presses.
func mashN(g *Game, n int) {
	for range n {
		g.KeyDown(KeyOther)
	}
}

// waitOutRevive ticks exactly one revive timeout.
func waitOutRevive(g *Game) {
	for range 30 {
		g.Tick(100*time.Millisecond, Held{})
	}
}

// tickUntil runs frames until cond holds or the limit is reached.
func tickUntil(t *testing.T, g *Game, limit int, cond func() bool) {
	t.Helper()
	for range limit {
		if cond() {
			return
		}
		g.Tick(frame, Held{})
	}
	if !cond() {
		t.Fatalf("condition not met after %d frames", limit)
	}
}
