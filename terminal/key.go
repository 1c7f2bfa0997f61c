package terminal

// Key represents a parsed host key
type Key uint8

const (
	KeyNone Key = iota
	KeyRune     // Printable ASCII (check Event.Rune)

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd

	KeyCtrlC
	KeyCtrlD
)

var keyNames = [...]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyCtrlC:     "ctrl+c",
	KeyCtrlD:     "ctrl+d",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// Event is one parsed host key press
type Event struct {
	Key  Key
	Rune byte
}

// Known CSI sequences (after ESC [); modified arrows fold onto plain arrows
var csiMap = map[string]Key{
	"A":    KeyUp,
	"B":    KeyDown,
	"C":    KeyRight,
	"D":    KeyLeft,
	"H":    KeyHome,
	"F":    KeyEnd,
	"1~":   KeyHome,
	"4~":   KeyEnd,
	"3~":   KeyDelete,
	"1;2A": KeyUp,
	"1;2B": KeyDown,
	"1;5A": KeyUp,
	"1;5B": KeyDown,
}

// SS3 sequences (after ESC O)
var ss3Map = map[string]Key{
	"A": KeyUp,
	"B": KeyDown,
	"C": KeyRight,
	"D": KeyLeft,
	"H": KeyHome,
	"F": KeyEnd,
}

// lookupCSI relies on the compiler eliding the string conversion
func lookupCSI(seq []byte) (Key, bool) {
	k, ok := csiMap[string(seq)]
	return k, ok
}

func lookupSS3(seq []byte) (Key, bool) {
	k, ok := ss3Map[string(seq)]
	return k, ok
}
