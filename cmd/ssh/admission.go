package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rejection reasons, also used as metric labels.
const (
	reasonRateLimit = "rate_limit"
	reasonCapacity  = "capacity"
)

// gate admits new sessions: a global token bucket smooths connection bursts
// and a hard cap bounds concurrent games.
type gate struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	active  int
	max     int
}

func newGate(perSecond float64, burst, maxSessions int) *gate {
	return &gate{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		max:     maxSessions,
	}
}

// admit reserves a session slot. On success the caller must call release.
func (g *gate) admit(now time.Time) (release func(), reason string) {
	if !g.limiter.AllowN(now, 1) {
		return nil, reasonRateLimit
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active >= g.max {
		return nil, reasonCapacity
	}
	g.active++

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			g.active--
			g.mu.Unlock()
		})
	}, ""
}
