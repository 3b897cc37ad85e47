package object

import (
	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/physics"
)

// Player animation names.
const (
	AnimIdle = "player_idle"
	AnimDown = "player_down"
)

// Player is the cat at the bottom of the screen. It only moves horizontally.
type Player struct {
	X, Y      float64
	VX        float64
	Speed     float64 // Horizontal speed while steering
	Size      float64 // Display edge length
	Body      float64 // Collision box edge length
	Tint      Tint
	Animation string
	Visible   bool
}

// NewPlayer creates the player at its start position, idle and untinted.
func NewPlayer(t config.Tuning) *Player {
	return &Player{
		X:         t.PlayerX,
		Y:         t.PlayerY,
		Speed:     t.PlayerSpeed,
		Size:      t.PlayerSize,
		Body:      t.PlayerBody,
		Tint:      NoTint,
		Animation: AnimIdle,
		Visible:   true,
	}
}

// Steer sets the horizontal velocity from the held direction keys.
// Left wins when both are held.
func (p *Player) Steer(left, right bool) {
	switch {
	case left:
		p.VX = -p.Speed
	case right:
		p.VX = p.Speed
	default:
		p.VX = 0
	}
}

// Step moves the player for dt seconds and keeps it inside the world.
func (p *Player) Step(world physics.Bounds, dt float64) {
	p.X += p.VX * dt
	if world.ClampX(&p.X, p.Body) {
		p.VX = 0
	}
}

// Play switches the current animation.
func (p *Player) Play(name string) {
	p.Animation = name
}

// Overlaps reports whether the player's collision box intersects e's.
func (p *Player) Overlaps(e *Entity) bool {
	return physics.BoxesOverlap(p.X, p.Y, p.Body, e.X, e.Y, e.Body)
}
