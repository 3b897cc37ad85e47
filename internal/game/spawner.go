package game

import "github.com/tomz197/nyanko/internal/object"

// spawnTarget runs on every spawn interval. Nothing spawns unless the
// player is Active.
func (s *Session) spawnTarget() {
	if s.State != StateActive {
		return
	}
	t := s.tuning

	x := float64(between(s.rng, t.SpawnMinX, t.SpawnMaxX))
	vx := float64(between(s.rng, t.TargetMinVX, t.TargetMaxVX))
	if s.rng.IntN(2) == 0 {
		vx = -vx
	}
	vy := float64(between(s.rng, t.TargetMinVY, t.TargetMaxVY))

	s.Targets.Add(object.NewTarget(t, x, 0, vx, vy))
	s.emit(Event{Type: EventTargetSpawned, Score: s.Score.Score})
}
