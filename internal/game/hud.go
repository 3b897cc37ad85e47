package game

import "fmt"

// HUD is the text overlay a frontend draws on top of the world.
type HUD struct {
	ScoreText       string
	HighScoreText   string
	ReviveText      string
	ReviveVisible   bool
	GameOverText    string // May span several lines
	GameOverVisible bool
}

func scoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

func highScoreText(high int) string {
	return fmt.Sprintf("High Score: %d", high)
}

func reviveText(count, required int) string {
	return fmt.Sprintf("MASH! (%d/%d)", count, required)
}

func gameOverText(newRecord bool, score int) string {
	if newRecord {
		return fmt.Sprintf("NEW RECORD!\n%d pts", score)
	}
	return "GAME OVER"
}
