package game

import "github.com/charmbracelet/log"

// NewLogObserver logs session events. Per-entity events go to debug.
func NewLogObserver(logger *log.Logger) Observer {
	return ObserverFunc(func(e Event) {
		switch e.Type {
		case EventSessionStarted:
			logger.Info("Session started", "highScore", e.HighScore)
		case EventPlayerDown:
			logger.Info("Player down", "score", e.Score, "required", e.Required)
		case EventRecovered:
			logger.Info("Player recovered", "score", e.Score, "presses", e.Required)
		case EventGameOver:
			logger.Info("Game over", "score", e.Score, "highScore", e.HighScore, "newRecord", e.NewRecord)
		case EventStorageError:
			logger.Warn("High score storage failed", "err", e.Err)
		case EventTargetDestroyed:
			logger.Debug("Target destroyed", "score", e.Score, "fragments", e.Count)
		case EventTargetDamaged:
			logger.Debug("Target damaged", "hp", e.HP)
		case EventMash:
			logger.Debug("Mash", "count", e.Count, "required", e.Required)
		default:
			logger.Debug(e.Type.String(), "score", e.Score)
		}
	})
}
