// Package tcellio runs the console on a gdamore/tcell screen.
//
// Machine mirrors terminal.Machine: the same 80x25 cell grid and VGA
// attribute colors, with host keys converted to scancode set 1.
package tcellio

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/kterm/constant"
	"github.com/lixenwraith/kterm/display"
	"github.com/lixenwraith/kterm/keyboard"
	"github.com/lixenwraith/kterm/terminal"
)

const scanQueueSize = 1024

// Machine is a virtual PC text console drawn through tcell
type Machine struct {
	screen tcell.Screen
	layout *keyboard.Layout

	cells  [constant.ScreenCells]display.Cell
	styles [256]tcell.Style

	scanCh   chan byte
	stopCh   chan struct{}
	doneCh   chan struct{}
	pollDone chan struct{}
	stopOnce sync.Once
	doneOnce sync.Once
	err      error

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a machine on the default tcell screen
func New(layout *keyboard.Layout) (*Machine, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	return newMachine(screen, layout), nil
}

func newMachine(screen tcell.Screen, layout *keyboard.Layout) *Machine {
	if layout == nil {
		layout = keyboard.DefaultLayout
	}
	m := &Machine{
		screen:   screen,
		layout:   layout,
		scanCh:   make(chan byte, scanQueueSize),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		pollDone: make(chan struct{}),
	}
	for i := range m.styles {
		m.styles[i] = StyleForAttr(byte(i))
	}
	return m
}

// StyleForAttr converts a VGA attribute byte to a tcell style
func StyleForAttr(attr byte) tcell.Style {
	fg, bg, blink := terminal.SplitAttr(attr)
	f, b := terminal.VGAColor(fg), terminal.VGAColor(bg)
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(f.R), int32(f.G), int32(f.B))).
		Background(tcell.NewRGBColor(int32(b.R), int32(b.G), int32(b.B))).
		Blink(blink)
}

// Init initializes the screen and starts the key reader
func (m *Machine) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := m.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}

	m.screen.SetStyle(m.styles[constant.AttrDefault])
	m.screen.Clear()
	if w, h := m.screen.Size(); w < constant.ScreenWidth || h < constant.ScreenHeight {
		log.Printf("host terminal %dx%d is smaller than %dx%d, output will be clipped",
			w, h, constant.ScreenWidth, constant.ScreenHeight)
	}

	go m.pollLoop()

	m.initialized = true
	return nil
}

// Fini stops the reader and restores the host terminal; safe to call multiple times
func (m *Machine) Fini() {
	m.stopOnce.Do(func() { close(m.stopCh) })

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.finalized {
		return
	}
	m.screen.Fini()

	select {
	case <-m.pollDone:
	case <-time.After(200 * time.Millisecond):
	}
	m.finalized = true
}

// SetCell implements display.Surface
func (m *Machine) SetCell(offset int, c display.Cell) {
	if offset < 0 || offset >= constant.ScreenCells {
		return
	}
	m.cells[offset] = c

	ch := rune(c.Char)
	switch {
	case c.Char == 0:
		ch = ' '
	case c.Char < 0x20 || c.Char >= 0x7f:
		ch = '?'
	}
	m.screen.SetContent(offset%constant.ScreenWidth, offset/constant.ScreenWidth, ch, nil, m.styles[c.Attr])
}

// Cell implements display.Surface
func (m *Machine) Cell(offset int) display.Cell {
	if offset < 0 || offset >= constant.ScreenCells {
		return display.Cell{}
	}
	return m.cells[offset]
}

// Present implements display.Presenter
func (m *Machine) Present(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.finalized {
		return
	}
	m.screen.ShowCursor(x, y)
	m.screen.Show()
}

// ReadScancode blocks for the next queued scancode
// Returns 0 once the machine is stopped or input has ended
func (m *Machine) ReadScancode() byte {
	select {
	case c := <-m.scanCh:
		return c
	default:
	}

	select {
	case c := <-m.scanCh:
		return c
	case <-m.doneCh:
		return 0
	case <-m.stopCh:
		return 0
	}
}

// Done is closed when the user interrupts or host input ends
func (m *Machine) Done() <-chan struct{} {
	return m.doneCh
}

// Err returns why Done was closed
func (m *Machine) Err() error {
	select {
	case <-m.doneCh:
		return m.err
	default:
		return nil
	}
}

func (m *Machine) pollLoop() {
	defer close(m.pollDone)

	defer func() {
		if r := recover(); r != nil {
			m.screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\nTCELL POLL CRASHED: %v\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		ev := m.screen.PollEvent()
		if ev == nil {
			m.finish(io.EOF)
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if !m.handleKey(ev) {
				return
			}
		case *tcell.EventResize:
			m.screen.Sync()
		}
	}
}

// handleKey queues the scancodes for ev; false once the machine is stopping
func (m *Machine) handleKey(ev *tcell.EventKey) bool {
	key := HostEvent(ev)
	switch key.Key {
	case terminal.KeyCtrlC:
		m.finish(terminal.ErrInterrupted)
		return true
	case terminal.KeyCtrlD:
		m.finish(io.EOF)
		return true
	}

	for _, c := range terminal.Scancodes(m.layout, key) {
		select {
		case m.scanCh <- c:
		case <-m.stopCh:
			return false
		}
	}
	return true
}

func (m *Machine) finish(err error) {
	m.doneOnce.Do(func() {
		m.err = err
		close(m.doneCh)
	})
}

// HostEvent converts a tcell key event to the host key model shared with terminal
func HostEvent(ev *tcell.EventKey) terminal.Event {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r < 0x20 || r >= 0x7f {
			return terminal.Event{}
		}
		return terminal.Event{Key: terminal.KeyRune, Rune: byte(r)}
	case tcell.KeyEnter:
		return terminal.Event{Key: terminal.KeyEnter}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.Event{Key: terminal.KeyBackspace}
	case tcell.KeyTab:
		return terminal.Event{Key: terminal.KeyTab}
	case tcell.KeyEsc:
		return terminal.Event{Key: terminal.KeyEscape}
	case tcell.KeyUp:
		return terminal.Event{Key: terminal.KeyUp}
	case tcell.KeyDown:
		return terminal.Event{Key: terminal.KeyDown}
	case tcell.KeyLeft:
		return terminal.Event{Key: terminal.KeyLeft}
	case tcell.KeyRight:
		return terminal.Event{Key: terminal.KeyRight}
	case tcell.KeyDelete:
		return terminal.Event{Key: terminal.KeyDelete}
	case tcell.KeyCtrlC:
		return terminal.Event{Key: terminal.KeyCtrlC}
	case tcell.KeyCtrlD:
		return terminal.Event{Key: terminal.KeyCtrlD}
	}
	return terminal.Event{}
}
