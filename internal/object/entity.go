// Package object holds the game's entities and the pools that own them.
package object

import (
	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/physics"
	"github.com/tomz197/nyanko/internal/schedule"
)

// Kind tags what an Entity is.
type Kind int

const (
	KindBullet Kind = iota
	KindTarget
	KindFragment
)

func (k Kind) String() string {
	switch k {
	case KindBullet:
		return "bullet"
	case KindTarget:
		return "target"
	case KindFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Entity is a transient world object: a bullet, a target or an explosion fragment.
type Entity struct {
	Kind   Kind
	X, Y   float64 // Centre position
	VX, VY float64 // Velocity in px/s
	Size   float64 // Display edge length
	Body   float64 // Collision box edge length
	Tint   Tint
	Active bool

	HP      int     // Targets only
	Gravity bool    // Affected by world gravity
	Bounded bool    // Reflects off the world edges
	Bounce  float64 // Restitution used when Bounded

	Expiry schedule.Handle // Fragments only: pending removal task
}

// NewBullet creates a bullet travelling straight up from (x,y).
func NewBullet(t config.Tuning, x, y float64) *Entity {
	return &Entity{
		Kind:   KindBullet,
		X:      x,
		Y:      y - t.BulletOffsetY,
		VY:     -t.BulletSpeed,
		Size:   t.BulletSize,
		Body:   t.BulletBody,
		Tint:   NoTint,
		Active: true,
	}
}

// NewTarget creates a full-health target that bounces around the world.
func NewTarget(t config.Tuning, x, y, vx, vy float64) *Entity {
	e := &Entity{
		Kind:    KindTarget,
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Size:    t.TargetSize,
		Body:    t.TargetBody,
		Active:  true,
		HP:      t.TargetMaxHP,
		Gravity: true,
		Bounded: true,
		Bounce:  t.TargetBounce,
	}
	e.Tint = TintForHP(e.HP)
	return e
}

// NewFragment creates an explosion fragment at (x,y).
func NewFragment(t config.Tuning, x, y, vx, vy float64) *Entity {
	return &Entity{
		Kind:    KindFragment,
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Size:    t.FragmentSize,
		Body:    t.FragmentBody,
		Tint:    FragmentTint,
		Active:  true,
		Gravity: true,
	}
}

// Step integrates the entity's motion for dt seconds.
func (e *Entity) Step(world physics.Bounds, gravity, dt float64) {
	if !e.Active {
		return
	}
	g := 0.0
	if e.Gravity {
		g = gravity
	}
	physics.Integrate(&e.X, &e.Y, &e.VX, &e.VY, g, dt)
	if e.Bounded {
		world.Reflect(&e.X, &e.Y, &e.VX, &e.VY, e.Body, e.Bounce)
	}
}

// Deactivate marks the entity for removal at the end of the tick.
func (e *Entity) Deactivate() {
	e.Active = false
}

// Overlaps reports whether the collision boxes of e and o intersect.
func (e *Entity) Overlaps(o *Entity) bool {
	return physics.BoxesOverlap(e.X, e.Y, e.Body, o.X, o.Y, o.Body)
}
