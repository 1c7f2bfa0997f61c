package terminal

import (
	"github.com/lixenwraith/kterm/keyboard"
)

// Scancodes returns the set 1 sequence a PC keyboard would send for ev
// Keys with no console meaning and characters outside the layout return nil
func Scancodes(layout *keyboard.Layout, ev Event) []byte {
	switch ev.Key {
	case KeyRune:
		return layout.Type(ev.Rune)
	case KeyEnter:
		return keyboard.Stroke(keyboard.CodeEnter, false)
	case KeyBackspace:
		return keyboard.Stroke(keyboard.CodeBackspace, false)
	case KeyTab:
		return keyboard.Stroke(keyboard.CodeTab, false)
	case KeyEscape:
		return keyboard.Stroke(keyboard.CodeEscape, false)
	case KeyUp:
		return keyboard.Stroke(keyboard.CodeArrowUp, true)
	case KeyDown:
		return keyboard.Stroke(keyboard.CodeArrowDown, true)
	case KeyLeft:
		return keyboard.Stroke(keyboard.CodeArrowLeft, true)
	case KeyRight:
		return keyboard.Stroke(keyboard.CodeArrowRight, true)
	}
	return nil
}
