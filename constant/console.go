package constant

// Text mode geometry
const (
	ScreenWidth  = 80
	ScreenHeight = 25
	ScreenCells  = ScreenWidth * ScreenHeight

	// BytesPerCell is the VGA text memory stride: character byte, attribute byte
	BytesPerCell = 2
)

// AttrDefault is bright white on black
const AttrDefault byte = 0x0F

// Blank is written into cleared and scrolled cells
const Blank byte = ' '

// Line input limits
const (
	// InputCapacity includes room for a terminator, usable length is InputCapacity-1
	InputCapacity = 128
	MaxLineLength = InputCapacity - 1

	HistoryCapacity = 10
)

// DefaultPrompt is drawn at start and after every command
const DefaultPrompt = "kterm> "
