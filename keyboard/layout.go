package keyboard

import "fmt"

// LayoutSize covers scancodes 0..57; index 0 is never a key
const LayoutSize = 58

// Layout maps make codes to ASCII for the unshifted and shifted planes
// Zero entries are keys with no character (modifiers, control keys)
type Layout struct {
	normal  [LayoutSize]byte
	shifted [LayoutSize]byte
}

// US QWERTY, scancode set 1
// Esc, Backspace, Tab, Enter and the modifiers carry no character
const (
	usNormal  = "\x00\x001234567890-=\x00\x00qwertyuiop[]\x00\x00asdfghjkl;'`\x00\\zxcvbnm,./\x00*\x00 "
	usShifted = "\x00\x00!@#$%^&*()_+\x00\x00QWERTYUIOP{}\x00\x00ASDFGHJKL:\"~\x00|ZXCVBNM<>?\x00*\x00 "
)

// reserved codes must never produce a character
var reserved = [...]byte{CodeEscape, CodeBackspace, CodeTab, CodeEnter, CodeLeftCtrl, CodeLeftShift, CodeRightShift, CodeLeftAlt}

// DefaultLayout is the US layout, validated at init
var DefaultLayout = MustLayout(usNormal, usShifted)

// NewLayout builds a layout from two LayoutSize-byte planes
func NewLayout(normal, shifted string) (*Layout, error) {
	if len(normal) != LayoutSize {
		return nil, fmt.Errorf("normal plane: expected %d entries, got %d", LayoutSize, len(normal))
	}
	if len(shifted) != LayoutSize {
		return nil, fmt.Errorf("shifted plane: expected %d entries, got %d", LayoutSize, len(shifted))
	}

	l := &Layout{}
	for i := 0; i < LayoutSize; i++ {
		n, s := normal[i], shifted[i]
		if !validEntry(n) {
			return nil, fmt.Errorf("normal plane: code 0x%02X maps to non-printable 0x%02X", i, n)
		}
		if !validEntry(s) {
			return nil, fmt.Errorf("shifted plane: code 0x%02X maps to non-printable 0x%02X", i, s)
		}
		l.normal[i] = n
		l.shifted[i] = s
	}

	if l.normal[0] != 0 || l.shifted[0] != 0 {
		return nil, fmt.Errorf("code 0x00 must not map to a character")
	}
	for _, code := range reserved {
		if l.normal[code] != 0 || l.shifted[code] != 0 {
			return nil, fmt.Errorf("reserved code 0x%02X must not map to a character", code)
		}
	}
	return l, nil
}

// MustLayout is NewLayout that panics on an invalid table
func MustLayout(normal, shifted string) *Layout {
	l, err := NewLayout(normal, shifted)
	if err != nil {
		panic(fmt.Sprintf("keyboard layout: %v", err))
	}
	return l
}

// Lookup returns the character for a make code, 0 if out of range or unmapped
func (l *Layout) Lookup(code byte, shift bool) byte {
	if code == 0 || int(code) >= LayoutSize {
		return 0
	}
	if shift {
		return l.shifted[code]
	}
	return l.normal[code]
}

// CodeFor reverse-maps a character to its make code and whether shift is needed
// Used by host machines to synthesize scancodes from host key presses
func (l *Layout) CodeFor(c byte) (code byte, shift bool, ok bool) {
	if c == 0 {
		return 0, false, false
	}
	for i := 1; i < LayoutSize; i++ {
		if l.normal[i] == c {
			return byte(i), false, true
		}
	}
	for i := 1; i < LayoutSize; i++ {
		if l.shifted[i] == c {
			return byte(i), true, true
		}
	}
	return 0, false, false
}

func validEntry(c byte) bool {
	return c == 0 || (c >= 0x20 && c < 0x7F)
}
