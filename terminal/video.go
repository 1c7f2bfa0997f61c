package terminal

import (
	"github.com/lixenwraith/kterm/constant"
	"github.com/lixenwraith/kterm/display"
)

// VideoMemory is VGA text memory: per cell a character byte then an attribute byte
type VideoMemory [constant.ScreenCells * constant.BytesPerCell]byte

// SetCell implements display.Surface; out-of-range offsets are ignored
func (m *VideoMemory) SetCell(offset int, c display.Cell) {
	if offset < 0 || offset >= constant.ScreenCells {
		return
	}
	i := offset * constant.BytesPerCell
	m[i] = c.Char
	m[i+1] = c.Attr
}

// Cell implements display.Surface
func (m *VideoMemory) Cell(offset int) display.Cell {
	if offset < 0 || offset >= constant.ScreenCells {
		return display.Cell{}
	}
	i := offset * constant.BytesPerCell
	return display.Cell{Char: m[i], Attr: m[i+1]}
}
