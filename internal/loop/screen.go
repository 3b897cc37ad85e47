package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/draw"
	"github.com/tomz197/nyanko/internal/game"
	"github.com/tomz197/nyanko/internal/object"
)

// Sprite base colours; entity tints are multiplied in.
const (
	catColor   draw.Color = 0xf2b880
	fishColor  draw.Color = 0x8fd3ff
	shellColor draw.Color = 0xffffff
	sparkColor draw.Color = 0xffffff
)

const (
	restartHint = "Press ENTER to restart"
	hintBlinkMs = 600
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	s := c.game.Session()

	// On session, state or inactivity transitions, do a full terminal clear
	// so overlays from the previous state don't persist on screen.
	if s != c.prevSession || s.State != c.prevState || c.isInactive != c.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.prevSession = s
		c.prevState = s.State
		c.wasInactive = c.isInactive
	}

	c.canvas.Clear()
	drawWorld(c.canvas, s)
	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	if c.isInactive {
		c.drawInactivityScreen()
	} else {
		c.drawHUD(s.HUD)
	}

	return c.chunkWriter.Flush()
}

// drawWorld paints every entity, player last.
func drawWorld(cv *draw.Canvas, s *game.Session) {
	for _, e := range s.Targets.Items() {
		drawEntity(cv, e, shellColor)
	}
	for _, e := range s.Fragments.Items() {
		drawEntity(cv, e, sparkColor)
	}
	for _, e := range s.Bullets.Items() {
		drawEntity(cv, e, fishColor)
	}

	p := s.Player
	if !p.Visible {
		return
	}
	col := draw.Multiply(catColor, draw.Color(p.Tint))
	if p.Animation == object.AnimDown {
		// Flattened cat lying on the floor line.
		cv.FillRect(p.X-p.Size/2, p.Y, p.Size, p.Size/2, col)
		return
	}
	cv.FillBox(p.X, p.Y, p.Size, col)
}

func drawEntity(cv *draw.Canvas, e *object.Entity, base draw.Color) {
	if !e.Active {
		return
	}
	cv.FillBox(e.X, e.Y, e.Size, draw.Multiply(base, draw.Color(e.Tint)))
}

// drawHUD writes the text overlay. Every written cell is marked dirty so the
// canvas repaints it once the text goes away.
func (c *Client) drawHUD(hud game.HUD) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	c.writeText(2, 1, hud.ScoreText)
	c.writeText(2, 2, hud.HighScoreText)

	controls := "A/D move  SPACE fire  Q quit"
	c.writeText(termWidth-len(controls), termHeight, controls)

	if hud.ReviveVisible {
		c.writeCentered(centerX, centerY, hud.ReviveText)
	}

	if hud.GameOverVisible {
		lines := strings.Split(hud.GameOverText, "\n")
		top := centerY - len(lines)/2
		for i, line := range lines {
			c.writeCentered(centerX, top+i, line)
		}
		if time.Now().UnixMilli()/hintBlinkMs%2 == 0 {
			c.writeCentered(centerX, top+len(lines)+1, restartHint)
		} else {
			c.canvas.MarkTextDirty(centerX-len(restartHint)/2, top+len(lines)+1, len(restartHint))
		}
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	centerX := c.canvas.TerminalWidth() / 2
	centerY := c.canvas.TerminalHeight() / 2

	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")
	c.writeCentered(centerX, centerY, fmt.Sprintf(
		"You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	))
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeText(centerX-len(s)/2, row, s)
}

func (c *Client) writeText(col, row int, s string) {
	if s == "" || row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	if room := c.canvas.TerminalWidth() - col + 1; room < len(s) {
		if room <= 0 {
			return
		}
		s = s[:room]
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len(s))
}
