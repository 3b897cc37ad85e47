// Package input turns a raw terminal byte stream into key-down events and
// held-key state.
package input

import (
	"bufio"
	"slices"
	"time"
)

// keyHoldDuration is how long a direction key counts as held after its last
// press. Terminals only report presses, so a held key is seen as auto-repeat.
const keyHoldDuration = 80 * time.Millisecond

// Press is one key-down event.
type Press int

const (
	PressOther Press = iota
	PressFire
	PressLeft
	PressRight
	PressConfirm
	PressQuit
)

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool // Held
	Right   bool // Held
	Confirm bool
	Presses []Press // Key-downs since the last frame, in arrival order
	Pressed []byte
}

// keyState tracks the last time each direction was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Unfinished escape sequence from the previous read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.parse(buf, time.Now())
	if closed {
		in.Quit = true
	}
	return in
}

// Reset forgets held keys, e.g. after a restart.
func (s *Stream) Reset() {
	s.state = keyState{}
	s.pending = nil
}

// parse turns the collected bytes into presses and refreshes held keys.
// Every escape sequence is one press. A sequence cut off at the end of buf
// waits for the next read; if that read brings no bytes it counts as one
// plain press (a lone ESC key).
func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}
	data := append(s.pending, buf...)
	s.pending = nil

	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != '\x1b' {
			s.apply(&in, classify(b), now)
			continue
		}

		p, n := escape(data[i:])
		if n == 0 {
			if len(buf) > 0 {
				s.pending = slices.Clone(data[i:])
				break
			}
			p, n = PressOther, len(data)-i
		}
		s.apply(&in, p, now)
		i += n - 1
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	return in
}

func (s *Stream) apply(in *Input, p Press, now time.Time) {
	switch p {
	case PressLeft:
		s.state.left = now
	case PressRight:
		s.state.right = now
	case PressConfirm:
		in.Confirm = true
	case PressQuit:
		in.Quit = true
	}
	in.Presses = append(in.Presses, p)
}

// escape decodes the escape sequence at the start of seq (seq[0] is ESC).
// It returns the press and the sequence length, or n == 0 when seq ends
// before the sequence does.
func escape(seq []byte) (p Press, n int) {
	if len(seq) < 2 {
		return PressOther, 0
	}
	switch seq[1] {
	case 'O': // SS3: ESC O <final>
		if len(seq) < 3 {
			return PressOther, 0
		}
		return arrow(seq[2]), 3
	case '[': // CSI: ESC [ <params> <final 0x40-0x7e>
		for j := 2; j < len(seq); j++ {
			c := seq[j]
			switch {
			case c >= 0x40 && c <= 0x7e:
				return arrow(c), j + 1
			case c < 0x20 || c > 0x3f:
				// Malformed; end the sequence before the stray byte.
				return PressOther, j
			}
		}
		return PressOther, 0
	default:
		// Alt+key or a lone ESC followed by a normal key.
		return PressOther, 1
	}
}

// arrow maps the final byte of a cursor sequence. Only left and right steer.
func arrow(final byte) Press {
	switch final {
	case 'C':
		return PressRight
	case 'D':
		return PressLeft
	default:
		return PressOther
	}
}

func classify(b byte) Press {
	switch b {
	case 'q', 'Q', 0x03: // 0x03 is Ctrl-C in raw mode
		return PressQuit
	case 'a', 'A', 'h', 'H':
		return PressLeft
	case 'd', 'D', 'l', 'L':
		return PressRight
	case ' ':
		return PressFire
	case '\n', '\r':
		return PressConfirm
	default:
		return PressOther
	}
}
