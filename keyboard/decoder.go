package keyboard

// Kind identifies a decoded key event
type Kind uint8

const (
	KindNone Kind = iota
	KindChar
	KindEnter
	KindBackspace
	KindArrowUp
	KindArrowDown
)

var kindNames = [...]string{
	KindNone:      "none",
	KindChar:      "char",
	KindEnter:     "enter",
	KindBackspace: "backspace",
	KindArrowUp:   "up",
	KindArrowDown: "down",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is a transient logical key event
type Event struct {
	Kind Kind
	Char byte // Valid for KindChar
}

// None reports whether the event carries nothing to act on
func (e Event) None() bool {
	return e.Kind == KindNone
}

// Filter selects how repeated make codes are suppressed
type Filter uint8

const (
	// FilterHeld tracks make/break per key; a make for a key already down is dropped
	FilterHeld Filter = iota
	// FilterLastCode drops a code identical to the previous one; any break resets it
	FilterLastCode
)

// Decoder turns raw set 1 scancodes into events
// Not safe for concurrent use; owned by the terminal loop
type Decoder struct {
	layout *Layout
	filter Filter

	held     [128]bool
	last     byte
	extended bool
}

// NewDecoder creates a decoder; nil layout selects DefaultLayout
func NewDecoder(layout *Layout, filter Filter) *Decoder {
	if layout == nil {
		layout = DefaultLayout
	}
	return &Decoder{
		layout: layout,
		filter: filter,
	}
}

// Decode consumes one raw code. Invalid, unmapped and repeated codes yield a none event
func (d *Decoder) Decode(code byte) Event {
	if code == CodeExtended {
		d.extended = true
		return Event{}
	}
	extended := d.extended
	d.extended = false

	if code == 0 {
		return Event{}
	}

	key := Make(code)

	// E0 2A / E0 AA are fake shifts emitted around grey keys
	if extended && (key == CodeLeftShift || key == CodeRightShift) {
		return Event{}
	}

	if IsBreak(code) {
		d.held[key] = false
		d.last = 0
		return Event{}
	}

	switch d.filter {
	case FilterLastCode:
		if code == d.last {
			return Event{}
		}
		d.last = code
	default:
		if d.held[key] {
			return Event{}
		}
	}
	d.held[key] = true

	switch key {
	case CodeEnter:
		return Event{Kind: KindEnter}
	case CodeBackspace:
		return Event{Kind: KindBackspace}
	case CodeArrowUp:
		return Event{Kind: KindArrowUp}
	case CodeArrowDown:
		return Event{Kind: KindArrowDown}
	}

	c := d.layout.Lookup(key, d.Shift())
	if c == 0 {
		return Event{}
	}
	return Event{Kind: KindChar, Char: c}
}

// Shift reports whether either shift key is down
func (d *Decoder) Shift() bool {
	return d.held[CodeLeftShift] || d.held[CodeRightShift]
}

// Reset forgets all key state
func (d *Decoder) Reset() {
	d.held = [128]bool{}
	d.last = 0
	d.extended = false
}
