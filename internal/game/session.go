// Package game is the single-scene simulation: spawning, combat, the player's
// down/revive state machine and score bookkeeping, driven by one Tick.
package game

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/object"
	"github.com/tomz197/nyanko/internal/physics"
	"github.com/tomz197/nyanko/internal/schedule"
)

// PlayerState is the player's position in the down/revive state machine.
type PlayerState int

const (
	StateActive PlayerState = iota
	StateDown
	StateGameOver
)

func (s PlayerState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDown:
		return "down"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Held is the state of the horizontal axis during a tick.
type Held struct {
	Left, Right bool
}

// Session is everything that lives for one play-through. A restart builds a
// new Session instead of resetting fields.
type Session struct {
	tuning   config.Tuning
	rng      *rand.Rand
	observer Observer
	clock    *schedule.Scheduler
	world    physics.Bounds
	grid     *physics.SpatialGrid

	Player    *object.Player
	Bullets   *object.Pool
	Targets   *object.Pool
	Fragments *object.Pool

	State           PlayerState
	MashCount       int
	RequiredPresses int
	PhysicsPaused   bool

	Score *Scoreboard
	HUD   HUD

	spawnTask  schedule.Handle
	reviveTask schedule.Handle
}

func newSession(opts Options) *Session {
	t := opts.Tuning
	s := &Session{
		tuning:          t,
		rng:             opts.Rand,
		observer:        opts.Observer,
		clock:           schedule.New(),
		world:           physics.Bounds{Width: t.WorldWidth, Height: t.WorldHeight},
		grid:            physics.NewSpatialGrid(t.WorldWidth, t.WorldHeight, maxBody(t)),
		Player:          object.NewPlayer(t),
		Bullets:         object.NewPool(),
		Targets:         object.NewPool(),
		Fragments:       object.NewPool(),
		State:           StateActive,
		RequiredPresses: t.RequiredPress,
	}

	score, err := LoadScoreboard(opts.Store, opts.HighScoreKey)
	s.Score = score
	if err != nil {
		s.emit(Event{Type: EventStorageError, Err: err})
	}
	s.HUD = HUD{
		ScoreText:     scoreText(0),
		HighScoreText: highScoreText(score.High),
	}

	s.spawnTask = s.clock.Every(t.SpawnInterval, s.spawnTarget)
	s.emit(Event{Type: EventSessionStarted, HighScore: score.High})
	return s
}

// maxBody is the grid cell size: two bodies can only overlap when their
// centres are closer than the larger body's edge.
func maxBody(t config.Tuning) float64 {
	return max(t.PlayerBody, t.BulletBody, t.TargetBody, t.FragmentBody, 1)
}

// Now returns the simulated time since the session started.
func (s *Session) Now() time.Duration {
	return s.clock.Now()
}

// Tuning returns the constants the session runs with.
func (s *Session) Tuning() config.Tuning {
	return s.tuning
}

// Tick advances the session by dt: timers first, then steering, motion,
// collisions and culling. Motion, collisions and culling are skipped while
// physics is paused; timers keep running.
func (s *Session) Tick(dt time.Duration, held Held) {
	s.clock.Advance(dt)

	if s.State == StateActive {
		s.Player.Steer(held.Left, held.Right)
	} else {
		s.Player.VX = 0
	}

	if !s.PhysicsPaused {
		sec := dt.Seconds()
		s.Player.Step(s.world, sec)
		for _, p := range s.pools() {
			for _, e := range p.Items() {
				e.Step(s.world, s.tuning.Gravity, sec)
			}
		}

		s.resolveCollisions()
		if !s.PhysicsPaused {
			s.cull()
		}
	}

	for _, p := range s.pools() {
		p.Compact()
	}
	s.Fragments.Flush()
}

func (s *Session) pools() [3]*object.Pool {
	return [3]*object.Pool{s.Bullets, s.Targets, s.Fragments}
}

// cull removes bullets that left the top of the world and targets that fell
// out of the bottom.
func (s *Session) cull() {
	for _, b := range s.Bullets.Items() {
		if b.Y < 0 {
			b.Deactivate()
		}
	}
	for _, t := range s.Targets.Items() {
		if t.Y > s.tuning.TargetCullY {
			t.Deactivate()
		}
	}
}

// fire launches a bullet from the player. Only an Active player can fire.
func (s *Session) fire() {
	if s.State != StateActive {
		return
	}
	s.Bullets.Add(object.NewBullet(s.tuning, s.Player.X, s.Player.Y))
	s.emit(Event{Type: EventBulletFired, Score: s.Score.Score})
}

func (s *Session) emit(e Event) {
	if s.observer != nil {
		s.observer.Notify(e)
	}
}

// between returns a uniform integer in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
