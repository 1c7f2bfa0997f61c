package terminal

import (
	"bufio"
	"strconv"
)

// Control sequences the console emits, xterm / ECMA-48
var (
	csi = []byte("\x1b[")

	seqReset     = []byte("\x1b[0m")
	seqErase     = []byte("\x1b[2J\x1b[H")
	seqHardReset = []byte("\x1bc") // RIS, crash path only

	// seqEnterConsole selects the alternate screen, turns autowrap off so a
	// write to the last cell never scrolls the host, and shows the cursor
	seqEnterConsole = []byte("\x1b[?1049h\x1b[?7l\x1b[?25h")

	// seqLeaveConsole reverses seqEnterConsole
	seqLeaveConsole = []byte("\x1b[0m\x1b[?25h\x1b[?1049l\x1b[?7h")
)

// writeInt writes a decimal parameter; negative values clamp to 0
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	var scratch [8]byte
	w.Write(strconv.AppendInt(scratch[:0], int64(n), 10))
}

// writeCursorPos emits CUP for 0-based column x, row y
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeCursorForward emits CUF; the parameter is omitted for a single cell
func writeCursorForward(w *bufio.Writer, n int) {
	if n <= 0 {
		return
	}
	w.Write(csi)
	if n > 1 {
		writeInt(w, n)
	}
	w.WriteByte('C')
}
