package terminal

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/lixenwraith/kterm/constant"
	"github.com/lixenwraith/kterm/display"
	"github.com/lixenwraith/kterm/keyboard"
)

// ErrInterrupted reports that the user pressed Ctrl+C
var ErrInterrupted = errors.New("interrupted")

// scanQueueSize holds a generous paste worth of make/break pairs
const scanQueueSize = 1024

// Machine is a virtual PC text console on the host terminal
// It implements display.Surface, display.Presenter and the console keyboard port
type Machine struct {
	backend Backend
	layout  *keyboard.Layout

	mem    VideoMemory
	output *outputBuffer
	input  *inputReader

	scanCh   chan byte
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	doneOnce sync.Once
	err      error

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a machine on stdin/stdout; nil layout selects keyboard.DefaultLayout
func New(colorMode ColorMode, layout *keyboard.Layout) *Machine {
	return newMachine(newBackend(), colorMode, layout)
}

func newMachine(b Backend, colorMode ColorMode, layout *keyboard.Layout) *Machine {
	if layout == nil {
		layout = keyboard.DefaultLayout
	}
	return &Machine{
		backend: b,
		layout:  layout,
		output:  newOutputBuffer(writerFunc(b.Write), colorMode),
		scanCh:  make(chan byte, scanQueueSize),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// writerFunc adapts Backend.Write to io.Writer
type writerFunc func([]byte) error

func (f writerFunc) Write(p []byte) (int, error) {
	if err := f(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Init enters raw mode and the alternate screen and starts reading keys
func (m *Machine) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := m.backend.Init(); err != nil {
		return fmt.Errorf("backend init: %w", err)
	}

	if w, h := m.backend.Size(); w < constant.ScreenWidth || h < constant.ScreenHeight {
		log.Printf("host terminal %dx%d is smaller than %dx%d, output will be clipped",
			w, h, constant.ScreenWidth, constant.ScreenHeight)
	}

	m.writeRaw(seqEnterConsole)
	m.output.clear()

	m.input = newInputReader(m.backend, m.handleKey, m.finish)
	m.input.start()

	m.initialized = true
	return nil
}

// Fini stops input and restores the host terminal; safe to call multiple times
func (m *Machine) Fini() {
	m.stopOnce.Do(func() { close(m.stopCh) })

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.finalized {
		return
	}

	if m.input != nil {
		m.input.stop()
	}

	m.writeRaw(seqLeaveConsole)

	m.backend.Fini()
	m.finalized = true
}

// ColorMode returns the color mode used for rendering
func (m *Machine) ColorMode() ColorMode {
	return m.output.colorMode
}

// SetCell implements display.Surface
func (m *Machine) SetCell(offset int, c display.Cell) {
	m.mem.SetCell(offset, c)
}

// Cell implements display.Surface
func (m *Machine) Cell(offset int) display.Cell {
	return m.mem.Cell(offset)
}

// Present implements display.Presenter, flushing changed cells to the host
func (m *Machine) Present(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.finalized {
		return
	}
	m.output.flush(&m.mem, x, y)
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

// handleKey runs on the input goroutine
func (m *Machine) handleKey(ev Event) {
	switch ev.Key {
	case KeyCtrlC:
		m.finish(ErrInterrupted)
		return
	case KeyCtrlD:
		m.finish(io.EOF)
		return
	}

	for _, c := range Scancodes(m.layout, ev) {
		select {
		case m.scanCh <- c:
		case <-m.stopCh:
			return
		}
	}
}

func (m *Machine) finish(err error) {
	m.doneOnce.Do(func() {
		m.err = err
		close(m.doneCh)
	})
}

func (m *Machine) writeRaw(data []byte) {
	m.backend.Write(data)
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(seqLeaveConsole)
	w.Write(seqHardReset)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
