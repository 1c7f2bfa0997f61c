package terminal

import (
	"bufio"
	"io"

	"github.com/lixenwraith/kterm/constant"
)

// outputBuffer renders video memory to the host with cell-level diffing
type outputBuffer struct {
	front     VideoMemory
	valid     bool // front mirrors the host screen
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	lastAttr  byte
	lastValid bool
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 32768),
		colorMode: colorMode,
	}
}

// flush writes cells that differ from the last frame, then places the cursor at (cx, cy)
func (o *outputBuffer) flush(mem *VideoMemory, cx, cy int) {
	w := o.writer

	for y := 0; y < constant.ScreenHeight; y++ {
		x := 0
		for x < constant.ScreenWidth {
			if o.clean(mem, x, y) {
				x++
				continue
			}

			// Position once per dirty run
			if !o.cursorValid || y != o.cursorY || x < o.cursorX {
				writeCursorPos(w, x, y)
			} else if x > o.cursorX {
				writeCursorForward(w, x-o.cursorX)
			}
			o.cursorX, o.cursorY, o.cursorValid = x, y, true

			for x < constant.ScreenWidth && !o.clean(mem, x, y) {
				i := (y*constant.ScreenWidth + x) * constant.BytesPerCell
				ch, attr := mem[i], mem[i+1]

				if !o.lastValid || attr != o.lastAttr {
					writeAttr(w, o.colorMode, attr)
					o.lastAttr, o.lastValid = attr, true
				}
				w.WriteByte(printable(ch))

				o.front[i], o.front[i+1] = ch, attr
				o.cursorX++
				x++
			}
		}
	}
	o.valid = true

	w.Write(seqReset)
	o.lastValid = false

	writeCursorPos(w, cx, cy)
	o.cursorX, o.cursorY = cx, cy
	w.Flush()
}

func (o *outputBuffer) clean(mem *VideoMemory, x, y int) bool {
	if !o.valid {
		return false
	}
	i := (y*constant.ScreenWidth + x) * constant.BytesPerCell
	return mem[i] == o.front[i] && mem[i+1] == o.front[i+1]
}

// printable maps bytes without a glyph on the host to a placeholder
func printable(ch byte) byte {
	switch {
	case ch == 0:
		return ' '
	case ch < 0x20 || ch >= 0x7f:
		return '?'
	}
	return ch
}

// clear blanks the host screen and forces a full redraw on the next flush
func (o *outputBuffer) clear() {
	w := o.writer
	w.Write(seqReset)
	w.Write(seqErase)
	w.Flush()

	o.valid = false
	o.lastValid = false
	o.cursorValid = false
}
