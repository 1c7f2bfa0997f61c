package terminal

import (
	"bufio"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode16        ColorMode = iota // SGR 30-37/90-97
	ColorMode256                        // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

var colorModeNames = [...]string{
	ColorMode16:        "16",
	ColorMode256:       "256",
	ColorModeTrueColor: "truecolor",
}

func (m ColorMode) String() string {
	if int(m) < len(colorModeNames) {
		return colorModeNames[m]
	}
	return "unknown"
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// vgaPalette is the default VGA text-mode palette indexed by color number
var vgaPalette = [16]RGB{
	{0x00, 0x00, 0x00}, // black
	{0x00, 0x00, 0xAA}, // blue
	{0x00, 0xAA, 0x00}, // green
	{0x00, 0xAA, 0xAA}, // cyan
	{0xAA, 0x00, 0x00}, // red
	{0xAA, 0x00, 0xAA}, // magenta
	{0xAA, 0x55, 0x00}, // brown
	{0xAA, 0xAA, 0xAA}, // light gray
	{0x55, 0x55, 0x55}, // dark gray
	{0x55, 0x55, 0xFF}, // light blue
	{0x55, 0xFF, 0x55}, // light green
	{0x55, 0xFF, 0xFF}, // light cyan
	{0xFF, 0x55, 0x55}, // light red
	{0xFF, 0x55, 0xFF}, // light magenta
	{0xFF, 0xFF, 0x55}, // yellow
	{0xFF, 0xFF, 0xFF}, // white
}

// vgaToANSI maps the low three VGA color bits to ANSI color order
var vgaToANSI = [8]uint8{0, 4, 2, 6, 1, 5, 3, 7}

// VGAColor returns the palette entry for a 4-bit VGA color number
func VGAColor(n uint8) RGB {
	return vgaPalette[n&0x0F]
}

// SplitAttr decodes a VGA attribute byte
// Bits 0-3 foreground, 4-6 background, 7 blink
func SplitAttr(attr byte) (fg, bg uint8, blink bool) {
	return attr & 0x0F, (attr >> 4) & 0x07, attr&0x80 != 0
}

// ansiIndex returns the xterm palette index for a VGA color number
func ansiIndex(n uint8) uint8 {
	idx := vgaToANSI[n&0x07]
	if n&0x08 != 0 {
		idx += 8
	}
	return idx
}

// writeAttr emits one SGR sequence selecting the colors of a VGA attribute
func writeAttr(w *bufio.Writer, mode ColorMode, attr byte) {
	fg, bg, blink := SplitAttr(attr)

	w.Write(csi)
	w.WriteByte('0')
	if blink {
		w.Write([]byte(";5"))
	}

	switch mode {
	case ColorModeTrueColor:
		c := VGAColor(fg)
		w.Write([]byte(";38;2;"))
		writeRGB(w, c)
		c = VGAColor(bg)
		w.Write([]byte(";48;2;"))
		writeRGB(w, c)

	case ColorMode256:
		w.Write([]byte(";38;5;"))
		writeInt(w, int(ansiIndex(fg)))
		w.Write([]byte(";48;5;"))
		writeInt(w, int(ansiIndex(bg)))

	default:
		base := 30
		if fg&0x08 != 0 {
			base = 90
		}
		w.WriteByte(';')
		writeInt(w, base+int(vgaToANSI[fg&0x07]))
		w.WriteByte(';')
		writeInt(w, 40+int(vgaToANSI[bg]))
	}
	w.WriteByte('m')
}

func writeRGB(w *bufio.Writer, c RGB) {
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
}
