// Package loop runs one game in a terminal: it reads keys, ticks the
// simulation at a fixed rate and redraws the screen.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/draw"
	"github.com/tomz197/nyanko/internal/game"
	"github.com/tomz197/nyanko/internal/input"
)

// TickRecorder receives the wall time of every simulation tick.
type TickRecorder interface {
	RecordTick(time.Duration)
}

// Options configures the client.
type Options struct {
	Game         game.Options
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Logger       *log.Logger       // Defaults to a discarding logger
	Ticks        TickRecorder
	// DisconnectIdle warns and then quits after the inactivity limits.
	DisconnectIdle bool
}

// Client handles rendering and input for a single player.
type Client struct {
	game         *game.Game
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	ticks        TickRecorder
	idle         bool

	in          input.Input
	running     bool
	lastInput   time.Time
	isInactive  bool
	wasInactive bool
	prevSession *game.Session
	prevState   game.PlayerState
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := game.New(opts.Game)
	tun := g.Session().Tuning()

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, tun.WorldWidth, tun.WorldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		game:         g,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		ticks:        opts.Ticks,
		idle:         opts.DisconnectIdle,
		running:      true,
		lastInput:    time.Now(),
		prevSession:  g.Session(),
	}
}

// Run is a shorthand for NewClient(r, w, opts).Run(ctx).
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewClient(r, w, opts).Run(ctx)
}

// Run starts the client loop. Blocks until the player quits, the input closes
// or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	for c.running && ctx.Err() == nil {
		frameStart := time.Now()

		c.processInput()
		if !c.running {
			break
		}
		c.updateScreen()
		c.tick()

		if err := c.drawFrame(); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < config.FrameTime {
			time.Sleep(config.FrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// Game returns the game being played.
func (c *Client) Game() *game.Game {
	return c.game
}

// processInput forwards this frame's key-downs to the game in arrival order.
func (c *Client) processInput() {
	c.in = input.ReadInput(c.inputStream)

	if len(c.in.Pressed) > 0 {
		c.lastInput = time.Now()
		c.isInactive = false
	} else if c.idle {
		idleFor := time.Since(c.lastInput).Seconds()
		if idleFor > config.InactivityDisconnectUser {
			c.logger.Info("Disconnecting idle player")
			c.running = false
			return
		}
		c.isInactive = idleFor > config.InactivityWarnUser
	}

	for _, p := range c.in.Presses {
		switch p {
		case input.PressQuit:
			c.running = false
			return
		case input.PressFire:
			c.game.KeyDown(game.KeyFire)
		default:
			c.game.KeyDown(game.KeyOther)
		}
	}

	// Input closed: keys read before EOF still count, then the client stops.
	if c.in.Quit {
		c.running = false
		return
	}

	if c.in.Confirm && c.game.Confirm() {
		c.inputStream.Reset()
		c.in.Left, c.in.Right = false, false
	}
}

func (c *Client) tick() {
	start := time.Now()
	c.game.Tick(config.FrameTime, game.Held{Left: c.in.Left, Right: c.in.Right})
	if c.ticks != nil {
		c.ticks.RecordTick(time.Since(start))
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
