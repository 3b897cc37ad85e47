package game

import "github.com/tomz197/nyanko/internal/object"

// resolveCollisions runs the three overlap passes of a tick. Targets are
// bucketed once; entries deactivated by an earlier hit are skipped.
func (s *Session) resolveCollisions() {
	targets := s.Targets.Items()
	s.grid.Clear()
	for i, t := range targets {
		if t.Active {
			s.grid.Insert(t.X, t.Y, i)
		}
	}

	for _, b := range s.Bullets.Items() {
		s.collide(b, targets)
	}
	for _, f := range s.Fragments.Items() {
		s.collide(f, targets)
	}

	if s.State != StateActive {
		return
	}
	p := s.Player
	s.grid.QueryAround(p.X, p.Y, func(i int) bool {
		t := targets[i]
		if !t.Active || !p.Overlaps(t) {
			return false
		}
		s.knockDown(t)
		return true
	})
}

// collide hits the first live target the projectile overlaps.
func (s *Session) collide(proj *object.Entity, targets []*object.Entity) {
	if !proj.Active {
		return
	}
	s.grid.QueryAround(proj.X, proj.Y, func(i int) bool {
		t := targets[i]
		if !t.Active || !proj.Overlaps(t) {
			return false
		}
		s.hitTarget(proj, t)
		return true
	})
}

// hitTarget destroys the bullet or fragment, then damages the target once.
func (s *Session) hitTarget(proj, target *object.Entity) {
	proj.Deactivate()
	if proj.Expiry != 0 {
		s.clock.Cancel(proj.Expiry)
		proj.Expiry = 0
	}
	s.damageTarget(target)
}

// damageTarget takes one hit-point. Hitting an inactive target does nothing.
func (s *Session) damageTarget(target *object.Entity) {
	if !target.Active {
		return
	}
	target.HP--
	if target.HP > 0 {
		target.Tint = object.TintForHP(target.HP)
		s.emit(Event{Type: EventTargetDamaged, Score: s.Score.Score, HP: target.HP})
		return
	}
	s.explodeTarget(target)
}

// explodeTarget removes the target, scores it and scatters fragments at its
// last position. The fragments join collision detection on the next tick and
// expire after FragmentLifetime whatever they hit.
func (s *Session) explodeTarget(target *object.Entity) {
	target.Deactivate()
	s.Score.Add(s.tuning.ExplosionScore)
	s.HUD.ScoreText = scoreText(s.Score.Score)

	t := s.tuning
	n := between(s.rng, t.FragmentsMin, t.FragmentsMax)
	for range n {
		vx := float64(between(s.rng, -t.FragmentSpeed, t.FragmentSpeed))
		vy := float64(between(s.rng, -t.FragmentSpeed, t.FragmentSpeed))
		f := object.NewFragment(t, target.X, target.Y, vx, vy)
		f.Expiry = s.clock.After(t.FragmentLifetime, func() {
			f.Expiry = 0
			f.Deactivate()
		})
		s.Fragments.Spawn(f)
	}

	s.emit(Event{Type: EventTargetDestroyed, Score: s.Score.Score, Count: n})
}
