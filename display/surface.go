// Package display implements a fixed-size text mode screen with cursor
// tracking, line wrap and scroll-up over a pluggable cell Surface.
package display

import (
	"github.com/lixenwraith/kterm/constant"
)

// Cell is one character position: character byte and VGA attribute byte
type Cell struct {
	Char byte
	Attr byte
}

// Surface is the cell memory the display writes into
// Offsets are linear, row-major: y*Width + x
type Surface interface {
	SetCell(offset int, c Cell)
	Cell(offset int) Cell
}

// Presenter is implemented by surfaces that need an explicit push to the
// host screen; x, y is where the hardware cursor should be shown
type Presenter interface {
	Present(x, y int)
}

// MemorySurface is a plain in-memory cell array
type MemorySurface struct {
	cells [constant.ScreenCells]Cell
}

// NewMemorySurface returns a zeroed surface
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

// SetCell implements Surface; out of range offsets are ignored
func (m *MemorySurface) SetCell(offset int, c Cell) {
	if offset < 0 || offset >= len(m.cells) {
		return
	}
	m.cells[offset] = c
}

// Cell implements Surface
func (m *MemorySurface) Cell(offset int) Cell {
	if offset < 0 || offset >= len(m.cells) {
		return Cell{}
	}
	return m.cells[offset]
}

// Row returns the characters of row y as a string, NUL rendered as space
func (m *MemorySurface) Row(y int) string {
	return RowText(m, y)
}

// RowText reads row y of any surface as a string
func RowText(s Surface, y int) string {
	buf := make([]byte, constant.ScreenWidth)
	base := y * constant.ScreenWidth
	for x := range buf {
		c := s.Cell(base + x).Char
		if c == 0 {
			c = constant.Blank
		}
		buf[x] = c
	}
	return string(buf)
}
