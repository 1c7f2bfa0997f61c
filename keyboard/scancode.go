// Package keyboard decodes PC scancode set 1 into logical key events.
//
// A make code reports a key press, the same code with the high bit set
// reports its release. The decoder keeps just enough state to turn a
// polled, possibly repeating stream of raw codes into one event per press.
package keyboard

// Scancode set 1 codes with special meaning to the decoder
const (
	CodeEscape     byte = 0x01
	CodeBackspace  byte = 0x0E
	CodeTab        byte = 0x0F
	CodeEnter      byte = 0x1C
	CodeLeftCtrl   byte = 0x1D
	CodeLeftShift  byte = 0x2A
	CodeRightShift byte = 0x36
	CodeLeftAlt    byte = 0x38
	CodeSpace      byte = 0x39
	CodeArrowUp    byte = 0x48
	CodeArrowLeft  byte = 0x4B
	CodeArrowRight byte = 0x4D
	CodeArrowDown  byte = 0x50

	// CodeExtended prefixes grey keys (arrows, right ctrl/alt)
	CodeExtended byte = 0xE0

	// BreakBit marks a key release
	BreakBit byte = 0x80
)

// IsBreak reports whether code is a key release
func IsBreak(code byte) bool {
	return code&BreakBit != 0
}

// Break returns the release code for a make code
func Break(code byte) byte {
	return code | BreakBit
}

// Make strips the release bit
func Make(code byte) byte {
	return code &^ BreakBit
}
