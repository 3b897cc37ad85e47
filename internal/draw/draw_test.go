package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestMultiply(t *testing.T) {
	tests := []struct {
		c, tint, want Color
	}{
		{0xffffff, 0xff0000, 0xff0000},
		{0x80c0ff, 0xffffff, 0x80c0ff},
		{0xffffff, 0xff9999, 0xff9999},
		{0x123456, 0x000000, 0x000000},
	}
	for _, tt := range tests {
		if got := Multiply(tt.c, tt.tint); got != tt.want {
			t.Errorf("Multiply(%06x, %06x) = %06x, want %06x", tt.c, tt.tint, got, tt.want)
		}
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	var out bytes.Buffer

	c.Render(&out)
	if got := strings.Count(out.String(), "H "); got != 50 {
		t.Fatalf("first frame wrote %d blank cells, want all 50", got)
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", out.String())
	}

	c.FillBox(50, 50, 10, 0xff0000)
	c.Render(&out)
	if !strings.Contains(out.String(), "\033[38;2;255;0;0m") {
		t.Fatalf("red pixel not rendered: %q", out.String())
	}

	out.Reset()
	c.Clear()
	c.Render(&out)
	if strings.Contains(out.String(), "38;2") || out.Len() == 0 {
		t.Fatalf("cleared cells not blanked: %q", out.String())
	}
}

func TestHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	var out bytes.Buffer

	c.FillRect(0, 0, 1, 1, 0x00ff00)
	c.Render(&out)
	if !strings.Contains(out.String(), string(BlockUpperHalf)) {
		t.Fatalf("top pixel: %q", out.String())
	}

	out.Reset()
	c.Clear()
	c.FillRect(0, 1, 1, 1, 0x00ff00)
	c.Render(&out)
	if !strings.Contains(out.String(), string(BlockLowerHalf)) {
		t.Fatalf("bottom pixel: %q", out.String())
	}

	out.Reset()
	c.FillRect(0, 0, 1, 1, 0xff0000)
	c.Render(&out)
	s := out.String()
	if !strings.Contains(s, "\033[38;2;255;0;0m") || !strings.Contains(s, "\033[48;2;0;255;0m") {
		t.Fatalf("stacked pixels: %q", s)
	}
}

func TestDirtyCellsRedraw(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var out bytes.Buffer
	c.Render(&out)

	out.Reset()
	c.MarkTextDirty(3, 2, 4)
	c.Render(&out)
	if got := strings.Count(out.String(), "H "); got != 4 {
		t.Fatalf("redrew %d cells, want 4", got)
	}

	out.Reset()
	c.ForceRedraw()
	c.Render(&out)
	if got := strings.Count(out.String(), "H "); got != 50 {
		t.Fatalf("forced redraw wrote %d cells, want 50", got)
	}
}

func TestOffsetApplied(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(5, 3)
	var out bytes.Buffer
	c.Render(&out)
	if !strings.HasPrefix(out.String(), "\033[4;6H") {
		t.Fatalf("first cell at %q, want row 4 col 6", out.String())
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", 3*maxChunkSize))
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[2;3Hhi") {
		t.Fatalf("prefix = %q", out.String()[:12])
	}
	if out.Len() != len("\033[2;3Hhi")+3*maxChunkSize {
		t.Fatalf("flushed %d bytes", out.Len())
	}
}
