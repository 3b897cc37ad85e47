package game

import "github.com/tomz197/nyanko/internal/object"

// knockDown moves an Active player to Down. The hazard is removed without
// damage accounting and the whole world freezes.
func (s *Session) knockDown(hazard *object.Entity) {
	hazard.Deactivate()

	s.State = StateDown
	s.PhysicsPaused = true
	s.Player.VX = 0
	s.Player.Tint = object.PlayerDamageTint
	s.Player.Play(object.AnimDown)

	s.MashCount = 0
	s.HUD.ReviveText = reviveText(s.MashCount, s.RequiredPresses)
	s.HUD.ReviveVisible = true

	s.clock.Cancel(s.reviveTask)
	s.reviveTask = s.clock.After(s.tuning.ReviveTimeout, s.reviveExpired)

	s.emit(Event{Type: EventPlayerDown, Score: s.Score.Score, Required: s.RequiredPresses})
}

// mash counts one key press while Down. It reports whether the press
// completed a recovery.
func (s *Session) mash() bool {
	if s.State != StateDown {
		return false
	}
	s.MashCount++
	s.HUD.ReviveText = reviveText(s.MashCount, s.RequiredPresses)
	s.emit(Event{Type: EventMash, Score: s.Score.Score, Count: s.MashCount, Required: s.RequiredPresses})

	if s.MashCount < s.RequiredPresses {
		return false
	}
	s.revive()
	return true
}

func (s *Session) revive() {
	s.clock.Cancel(s.reviveTask)
	s.reviveTask = 0

	reached := s.RequiredPresses
	s.State = StateActive
	s.PhysicsPaused = false
	s.Player.Tint = object.NoTint
	s.Player.Play(object.AnimIdle)
	s.HUD.ReviveVisible = false
	s.RequiredPresses += s.tuning.PressIncrement

	s.emit(Event{Type: EventRecovered, Score: s.Score.Score, Required: reached})
}

// reviveExpired ends the session. It does nothing if the player already
// recovered.
func (s *Session) reviveExpired() {
	if s.State != StateDown {
		return
	}
	s.reviveTask = 0

	s.State = StateGameOver
	s.PhysicsPaused = true
	s.Player.Visible = false
	s.clock.Pause(s.spawnTask)

	newRecord, err := s.Score.Finalize()
	if err != nil {
		s.emit(Event{Type: EventStorageError, Score: s.Score.Score, Err: err})
	}

	s.HUD.ReviveVisible = false
	s.HUD.HighScoreText = highScoreText(s.Score.High)
	s.HUD.GameOverText = gameOverText(newRecord, s.Score.Score)
	s.HUD.GameOverVisible = true

	s.emit(Event{
		Type:      EventGameOver,
		Score:     s.Score.Score,
		HighScore: s.Score.High,
		NewRecord: newRecord,
	})
}
