// Package desktop runs the game in a window with ebiten.
package desktop

import (
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/nyanko/internal/game"
	"github.com/tomz197/nyanko/internal/object"
)

var (
	background = color.RGBA{0xf7, 0xf3, 0xe8, 0xff}
	catColor   = color.RGBA{0xf2, 0xb8, 0x80, 0xff}
	fishColor  = color.RGBA{0x8f, 0xd3, 0xff, 0xff}
	white      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// App adapts a game.Game to ebiten.Game.
type App struct {
	game   *game.Game
	logger *log.Logger
	keys   []ebiten.Key
}

// New creates the window app.
func New(opts game.Options, logger *log.Logger) *App {
	return &App{game: game.New(opts), logger: logger}
}

// Run opens the window and blocks until it is closed.
func Run(app *App) error {
	tun := app.game.Session().Tuning()
	ebiten.SetWindowSize(int(tun.WorldWidth), int(tun.WorldHeight))
	ebiten.SetWindowTitle("Nyanko")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(app)
}

// Update implements ebiten.Game. Key-downs are applied before the tick.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		if k == ebiten.KeySpace {
			a.game.KeyDown(game.KeyFire)
		} else {
			a.game.KeyDown(game.KeyOther)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if a.game.Confirm() {
			a.logger.Debug("Restarted")
		}
	}

	held := game.Held{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}
	a.game.Tick(time.Second/time.Duration(ebiten.TPS()), held)
	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	s := a.game.Session()
	screen.Fill(background)

	for _, e := range s.Targets.Items() {
		drawEntity(screen, e, white)
	}
	for _, e := range s.Fragments.Items() {
		drawEntity(screen, e, white)
	}
	for _, e := range s.Bullets.Items() {
		drawEntity(screen, e, fishColor)
	}
	drawPlayer(screen, s.Player)

	hud := s.HUD
	ebitenutil.DebugPrintAt(screen, hud.ScoreText, 16, 16)
	ebitenutil.DebugPrintAt(screen, hud.HighScoreText, 16, 36)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if hud.ReviveVisible {
		printCentered(screen, hud.ReviveText, w/2, h/2)
	}
	if hud.GameOverVisible {
		printCentered(screen, hud.GameOverText+"\n(click to restart)", w/2, h/2)
	}
}

// Layout implements ebiten.Game. The world is drawn at its own resolution
// and scaled to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	tun := a.game.Session().Tuning()
	return int(tun.WorldWidth), int(tun.WorldHeight)
}

func drawEntity(screen *ebiten.Image, e *object.Entity, base color.RGBA) {
	if !e.Active {
		return
	}
	fillBox(screen, e.X, e.Y, e.Size, e.Size, tinted(base, e.Tint))
}

func drawPlayer(screen *ebiten.Image, p *object.Player) {
	if !p.Visible {
		return
	}
	c := tinted(catColor, p.Tint)
	if p.Animation == object.AnimDown {
		fillBox(screen, p.X, p.Y+p.Size/4, p.Size, p.Size/2, c)
		return
	}
	fillBox(screen, p.X, p.Y, p.Size, p.Size, c)
}

// fillBox fills a w x h rectangle centred on (cx,cy).
func fillBox(screen *ebiten.Image, cx, cy, w, h float64, c color.Color) {
	vector.DrawFilledRect(screen, float32(cx-w/2), float32(cy-h/2), float32(w), float32(h), c, false)
}

// tinted multiplies base by the tint channel-wise.
func tinted(base color.RGBA, t object.Tint) color.RGBA {
	r, g, b := t.RGB()
	return color.RGBA{
		R: uint8(uint16(base.R) * uint16(r) / 255),
		G: uint8(uint16(base.G) * uint16(g) / 255),
		B: uint8(uint16(base.B) * uint16(b) / 255),
		A: base.A,
	}
}

// printCentered prints multi-line debug text centred on (cx,cy).
// The debug font is 6x16 pixels per glyph.
func printCentered(screen *ebiten.Image, text string, cx, cy int) {
	lines := strings.Split(text, "\n")
	top := cy - len(lines)*16/2
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, cx-len(line)*6/2, top+i*16)
	}
}
