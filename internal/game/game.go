package game

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/storage"
)

// Key classifies a raw key-down event.
type Key int

const (
	KeyOther Key = iota // Any key without a gameplay binding
	KeyFire
)

// Options configures a Game. Zero fields fall back to defaults.
type Options struct {
	Tuning       config.Tuning // Zero value means config.DefaultTuning()
	Store        storage.Store // nil keeps high scores for the process only
	HighScoreKey string        // Defaults to config.HighScoreKey
	Rand         *rand.Rand    // nil seeds a fresh generator
	Observer     Observer
}

// Game owns the current session and rebuilds it on restart.
// It is not safe for concurrent use.
type Game struct {
	opts    Options
	session *Session
}

// New starts a game with a fresh session.
func New(opts Options) *Game {
	if opts.Tuning == (config.Tuning{}) {
		opts.Tuning = config.DefaultTuning()
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemory()
	}
	if opts.HighScoreKey == "" {
		opts.HighScoreKey = config.HighScoreKey
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g := &Game{opts: opts}
	g.session = newSession(g.opts)
	return g
}

// Session returns the running session. The pointer changes on restart.
func (g *Game) Session() *Session {
	return g.session
}

// KeyDown handles one key-down event. While Down every key counts towards
// recovery; the press that completes it does not also fire.
func (g *Game) KeyDown(k Key) {
	s := g.session
	if s.State == StateDown {
		s.mash()
		return
	}
	if k == KeyFire {
		s.fire()
	}
}

// Confirm restarts after a game over. It reports whether a new session began;
// outside GameOver it does nothing.
func (g *Game) Confirm() bool {
	if g.session.State != StateGameOver {
		return false
	}
	g.session = newSession(g.opts)
	return true
}

// Tick advances the running session by dt.
func (g *Game) Tick(dt time.Duration, held Held) {
	g.session.Tick(dt, held)
}
