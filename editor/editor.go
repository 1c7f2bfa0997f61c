// Package editor owns the in-progress command line and echoes edits to
// the display.
package editor

import (
	"github.com/lixenwraith/kterm/constant"
	"github.com/lixenwraith/kterm/display"
)

// Redraw selects how a recalled line replaces the echoed input
type Redraw uint8

const (
	// RedrawLine erases the echoed input in place when it sits on the cursor
	// row and falls back to RedrawScreen when it wrapped
	RedrawLine Redraw = iota
	// RedrawScreen clears the display and reprints prompt and line
	RedrawScreen
)

// Editor is the line buffer; insertion point is always the end
type Editor struct {
	display *display.Display
	prompt  string
	redraw  Redraw

	buf [constant.InputCapacity]byte
	n   int
}

// New creates an empty editor echoing to d
func New(d *display.Display, prompt string, redraw Redraw) *Editor {
	return &Editor{
		display: d,
		prompt:  prompt,
		redraw:  redraw,
	}
}

// Len returns the number of buffered characters
func (e *Editor) Len() int {
	return e.n
}

// String returns the buffered characters
func (e *Editor) String() string {
	return string(e.buf[:e.n])
}

// Prompt returns the prompt reprinted on a screen redraw
func (e *Editor) Prompt() string {
	return e.prompt
}

// InsertChar appends and echoes c; returns false when the buffer is full
func (e *Editor) InsertChar(c byte) bool {
	if e.n >= constant.MaxLineLength {
		return false
	}
	e.buf[e.n] = c
	e.n++
	e.display.PutChar(c)
	return true
}

// Backspace removes the last character; no-op on an empty buffer
func (e *Editor) Backspace() {
	if e.n == 0 {
		return
	}
	e.n--
	e.buf[e.n] = 0
	e.display.EraseLast(1)
}

// Submit returns the line and empties the buffer
func (e *Editor) Submit() string {
	line := string(e.buf[:e.n])
	e.reset()
	return line
}

// Load replaces the buffer with line, truncated to capacity, and redraws it
func (e *Editor) Load(line string) {
	if len(line) > constant.MaxLineLength {
		line = line[:constant.MaxLineLength]
	}

	if e.redraw == RedrawLine && e.display.RowUsed() >= e.n {
		e.display.EraseLast(e.n)
	} else {
		e.display.Clear()
		e.display.PutString(e.prompt)
	}

	e.reset()
	for i := 0; i < len(line); i++ {
		e.buf[e.n] = line[i]
		e.n++
		e.display.PutChar(line[i])
	}
}

func (e *Editor) reset() {
	for i := 0; i < e.n; i++ {
		e.buf[i] = 0
	}
	e.n = 0
}
