// Package draw renders coloured blocks to an ANSI terminal.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Block characters for drawing.
const (
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a 0xRRGGBB truecolor value.
type Color uint32

// RGB splits the colour into its channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Multiply tints c by t channel-wise. White leaves c unchanged.
func Multiply(c, t Color) Color {
	cr, cg, cb := c.RGB()
	tr, tg, tb := t.RGB()
	mul := func(a, b uint8) Color { return Color(uint16(a) * uint16(b) / 255) }
	return mul(cr, tr)<<16 | mul(cg, tg)<<8 | mul(cb, tb)
}

type pixel struct {
	color Color
	lit   bool
}

// cell is one terminal character: two stacked pixels.
type cell struct {
	top, bottom pixel
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Game objects draw in logical coordinates which are scaled to
// the terminal. Render only rewrites cells that changed since the last frame.
type Canvas struct {
	termWidth      int // Actual terminal columns
	termHeight     int // Actual terminal rows
	subPixelHeight int // termHeight * 2
	pixels         []pixel

	drawn []cell // What the terminal currently shows
	dirty []bool // Cells to rewrite whatever they hold

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets used to centre the render area.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to
// terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 1), max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]pixel, c.subPixelHeight*termWidth)
		c.drawn = make([]cell, termWidth*termHeight)
		c.dirty = make([]bool, termWidth*termHeight)
		c.ForceRedraw()
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the render area's column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the render area's row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels. The terminal is untouched until Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell, e.g. after the
// screen was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.dirty {
		c.dirty[i] = true
	}
}

// MarkTextDirty flags cells overwritten by a text overlay so the next Render
// repaints them. col and row are 1-based canvas coordinates.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < col-1+n && x < c.termWidth; x++ {
		c.dirty[r*c.termWidth+x] = true
	}
}

func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = pixel{color: col, lit: true}
	}
}

// FillRect fills a logical rectangle with its top-left corner at (x,y).
// Anything visible covers at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0 := int(math.Floor(x * c.scaleX))
	x1 := max(int(math.Ceil((x+w)*c.scaleX))-1, x0)
	y0 := int(math.Floor(y * c.scaleY))
	y1 := max(int(math.Ceil((y+h)*c.scaleY))-1, y0)

	for py := max(y0, 0); py <= y1 && py < c.subPixelHeight; py++ {
		for px := max(x0, 0); px <= x1 && px < c.termWidth; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// FillBox fills a logical square of edge size centred on (cx,cy).
func (c *Canvas) FillBox(cx, cy, size float64, col Color) {
	c.FillRect(cx-size/2, cy-size/2, size, size, col)
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position
// (col, row), for placing text over drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// Render writes every changed cell to w.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cur := cell{
				top:    c.pixels[(row*2)*c.termWidth+col],
				bottom: c.pixels[(row*2+1)*c.termWidth+col],
			}
			if !c.dirty[i] && c.drawn[i] == cur {
				continue
			}
			c.drawn[i] = cur
			c.dirty[i] = false

			c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			c.writeCell(cur)
		}
	}

	io.WriteString(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) writeCell(cl cell) {
	switch {
	case cl.top.lit && cl.bottom.lit:
		c.writeColor(38, cl.top.color)
		c.writeColor(48, cl.bottom.color)
		c.renderBuf.WriteRune(BlockUpperHalf)
	case cl.top.lit:
		c.writeColor(38, cl.top.color)
		c.renderBuf.WriteRune(BlockUpperHalf)
	case cl.bottom.lit:
		c.writeColor(38, cl.bottom.color)
		c.renderBuf.WriteRune(BlockLowerHalf)
	default:
		c.renderBuf.WriteByte(' ')
		return
	}
	c.renderBuf.WriteString(ColorReset)
}

// writeColor emits a truecolor SGR sequence; layer is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(layer int, col Color) {
	r, g, b := col.RGB()
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(r), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(g), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(b), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a frame around the canvas when the terminal is larger
// than the render area on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for side bars
	hasV := c.offsetRow >= 1 // Room for top and bottom bars

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			buf.WriteString(cursor(left, top) + "┌" + bar + "┐")
			buf.WriteString(cursor(left, bottom) + "└" + bar + "┘")
		} else {
			buf.WriteString(cursor(left+1, top) + bar)
			buf.WriteString(cursor(left+1, bottom) + bar)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row < bottom; row++ {
			buf.WriteString(cursor(left, row) + "│" + cursor(right, row) + "│")
		}
	}
	io.WriteString(w, buf.String())
}

func cursor(col, row int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}
