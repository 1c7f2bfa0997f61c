// Package console composes the key decoder, display, line editor, history
// and command dispatcher into the interactive terminal loop.
//
// The loop is single-threaded: one goroutine calls Step (or Run) and owns all
// state. The Port is the only boundary another goroutine may feed.
package console

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/lixenwraith/kterm/command"
	"github.com/lixenwraith/kterm/constant"
	"github.com/lixenwraith/kterm/display"
	"github.com/lixenwraith/kterm/editor"
	"github.com/lixenwraith/kterm/history"
	"github.com/lixenwraith/kterm/keyboard"
)

// Port supplies raw scancodes; calls may block and may repeat values
type Port interface {
	ReadScancode() byte
}

// Speaker is the sound capability the terminal and its commands use
type Speaker interface {
	command.Beeper
	Bell()
}

// State is the loop phase
type State uint8

const (
	StateAwaitKey State = iota
	StateEditing
	StateSubmitting
	StateRecalling
)

var stateNames = [...]string{
	StateAwaitKey:   "await",
	StateEditing:    "editing",
	StateSubmitting: "submitting",
	StateRecalling:  "recalling",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Options configures a Terminal; the zero value is usable
type Options struct {
	Prompt       string
	Attr         byte // 0 selects constant.AttrDefault
	Layout       *keyboard.Layout
	Filter       keyboard.Filter
	History      history.Policy // zero Capacity selects constant.HistoryCapacity
	Redraw       editor.Redraw
	Speaker      Speaker // nil disables sound
	BellOnReject bool
	Backend      string
	Dispatcher   *command.Dispatcher // nil selects command.NewBuiltin
}

// Terminal is the aggregate owning every piece of console state
type Terminal struct {
	port       Port
	decoder    *keyboard.Decoder
	display    *display.Display
	editor     *editor.Editor
	history    *history.Store
	dispatcher *command.Dispatcher
	env        *command.Env

	speaker      Speaker
	bellOnReject bool
	session      string
	state        State
}

// New builds a terminal reading from port and drawing to surface
func New(port Port, surface display.Surface, opts Options) *Terminal {
	attr := opts.Attr
	if attr == 0 {
		attr = constant.AttrDefault
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = command.NewBuiltin()
	}

	d := display.New(surface, attr)
	h := history.New(opts.History)

	t := &Terminal{
		port:         port,
		decoder:      keyboard.NewDecoder(opts.Layout, opts.Filter),
		display:      d,
		editor:       editor.New(d, opts.Prompt, opts.Redraw),
		history:      h,
		dispatcher:   dispatcher,
		speaker:      opts.Speaker,
		bellOnReject: opts.BellOnReject,
		session:      uuid.NewString(),
	}

	t.env = &command.Env{
		Display: d,
		History: h,
		Session: t.session,
		Backend: opts.Backend,
	}
	// Avoid a typed-nil Beeper reaching commands
	if opts.Speaker != nil {
		t.env.Speaker = opts.Speaker
	}
	return t
}

// Session returns the id assigned at construction
func (t *Terminal) Session() string {
	return t.session
}

// State returns the current loop phase
func (t *Terminal) State() State {
	return t.state
}

// Display exposes the display for inspection
func (t *Terminal) Display() *display.Display {
	return t.display
}

// Editor exposes the line editor for inspection
func (t *Terminal) Editor() *editor.Editor {
	return t.editor
}

// History exposes the history store for inspection
func (t *Terminal) History() *history.Store {
	return t.history
}

// Start clears the display and key state and draws the prompt
func (t *Terminal) Start() {
	t.decoder.Reset()
	t.display.Clear()
	t.display.PutString(t.editor.Prompt())
	t.display.Present()
	t.state = StateAwaitKey
	log.Printf("console %s: started", t.session)
}

// Step reads and handles one scancode, returning the decoded event
func (t *Terminal) Step() keyboard.Event {
	ev := t.decoder.Decode(t.port.ReadScancode())
	t.handle(ev)
	t.display.Present()
	t.state = StateAwaitKey
	return ev
}

// Run starts the terminal and steps until ctx is done
// A blocked ReadScancode is released by stopping the Port, not by ctx
func (t *Terminal) Run(ctx context.Context) error {
	t.Start()
	for {
		select {
		case <-ctx.Done():
			log.Printf("console %s: stopped", t.session)
			return nil
		default:
		}
		t.Step()
	}
}

func (t *Terminal) handle(ev keyboard.Event) {
	switch ev.Kind {
	case keyboard.KindChar:
		t.state = StateEditing
		if !t.editor.InsertChar(ev.Char) && t.bellOnReject && t.speaker != nil {
			t.speaker.Bell()
		}

	case keyboard.KindBackspace:
		t.state = StateEditing
		t.editor.Backspace()

	case keyboard.KindEnter:
		t.state = StateSubmitting
		t.submit()

	case keyboard.KindArrowUp:
		t.state = StateRecalling
		if line, ok := t.history.RecallOlder(); ok {
			t.editor.Load(line)
		}

	case keyboard.KindArrowDown:
		t.state = StateRecalling
		if line, ok := t.history.RecallNewer(); ok {
			t.editor.Load(line)
		}
	}
}

func (t *Terminal) submit() {
	line := t.editor.Submit()
	t.history.Push(line)
	t.display.PutNewline()
	if line != "" {
		log.Printf("console %s: dispatch %q", t.session, line)
	}
	t.dispatcher.Dispatch(t.env, line)
	t.display.PutString(t.editor.Prompt())
}
