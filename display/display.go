package display

import (
	"github.com/lixenwraith/kterm/constant"
)

const (
	Width  = constant.ScreenWidth
	Height = constant.ScreenHeight
)

// Display owns the cursor and all writes to a Surface
// Invariant: 0 <= x < Width, 0 <= y < Height between calls
//
// A write into the last column leaves the cursor there with a pending
// wrap; the wrap (and scroll, on the last row) happens before the next
// character is written, so a full screen of output scrolls only when
// one more character arrives.
type Display struct {
	surface Surface
	attr    byte
	x, y    int
	pending bool

	scrolls int
}

// New wraps a surface; attr is written with every character
// The surface is not cleared, call Clear for a blank start
func New(surface Surface, attr byte) *Display {
	return &Display{
		surface: surface,
		attr:    attr,
	}
}

// Surface returns the underlying cell memory
func (d *Display) Surface() Surface {
	return d.surface
}

// Cursor returns the current cursor cell
func (d *Display) Cursor() (x, y int) {
	return d.x, d.y
}

// Attr returns the attribute used for writes
func (d *Display) Attr() byte {
	return d.attr
}

// Scrolls returns how many times the screen has scrolled since creation
func (d *Display) Scrolls() int {
	return d.scrolls
}

// RowUsed returns how many cells of the cursor row precede the next write
func (d *Display) RowUsed() int {
	if d.pending {
		return Width
	}
	return d.x
}

// PutChar writes c at the cursor and advances, wrapping and scrolling as needed
func (d *Display) PutChar(c byte) {
	if d.pending {
		d.lineFeed()
	}
	d.surface.SetCell(d.offset(d.x, d.y), Cell{Char: c, Attr: d.attr})
	if d.x == Width-1 {
		d.pending = true
		return
	}
	d.x++
}

// PutNewline moves to column 0 of the next row
func (d *Display) PutNewline() {
	d.lineFeed()
}

// PutString writes s, treating '\n' as a newline
func (d *Display) PutString(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			d.lineFeed()
			continue
		}
		d.PutChar(s[i])
	}
}

// Clear blanks every cell and homes the cursor
func (d *Display) Clear() {
	blank := d.blank()
	for i := 0; i < Width*Height; i++ {
		d.surface.SetCell(i, blank)
	}
	d.x, d.y = 0, 0
	d.pending = false
}

// EraseLast steps the cursor back up to n columns, blanking each cell
// It stops at column 0 and never moves to the previous row
func (d *Display) EraseLast(n int) {
	blank := d.blank()
	if n > 0 && d.pending {
		d.pending = false
		d.surface.SetCell(d.offset(d.x, d.y), blank)
		n--
	}
	for ; n > 0 && d.x > 0; n-- {
		d.x--
		d.surface.SetCell(d.offset(d.x, d.y), blank)
	}
}

// Present pushes the frame if the surface needs it
func (d *Display) Present() {
	if p, ok := d.surface.(Presenter); ok {
		p.Present(d.x, d.y)
	}
}

func (d *Display) lineFeed() {
	d.pending = false
	d.x = 0
	d.y++
	if d.y >= Height {
		d.scroll()
		d.y = Height - 1
	}
}

// scroll copies every row up by one and blanks the bottom row
func (d *Display) scroll() {
	for i := Width; i < Width*Height; i++ {
		d.surface.SetCell(i-Width, d.surface.Cell(i))
	}
	blank := d.blank()
	last := (Height - 1) * Width
	for x := 0; x < Width; x++ {
		d.surface.SetCell(last+x, blank)
	}
	d.scrolls++
}

func (d *Display) blank() Cell {
	return Cell{Char: constant.Blank, Attr: d.attr}
}

func (d *Display) offset(x, y int) int {
	return y*Width + x
}
