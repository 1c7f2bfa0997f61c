package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"
)

// inputReader parses raw host input into key events
type inputReader struct {
	backend Backend
	emit    func(Event)
	closed  func(error)
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for escape sequences split across reads
	buf []byte
}

// newInputReader creates a reader delivering events to emit
// closed is called once when input ends without stop being requested
func newInputReader(backend Backend, emit func(Event), closed func(error)) *inputReader {
	return &inputReader{
		backend: backend,
		emit:    emit,
		closed:  closed,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

// start begins reading input in a goroutine
func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

// stop signals the reader to stop
func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	// Don't block forever if read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(200 * time.Millisecond):
	}
}

func (r *inputReader) stopping() bool {
	select {
	case <-r.stopCh:
		return true
	default:
		return false
	}
}

// readLoop is the input goroutine
func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			if !r.stopping() && r.closed != nil {
				r.closed(err)
			}
			return
		}

		if len(data) == 0 {
			if r.stopping() {
				return
			}
			// Poll timeout: a lone ESC is the Escape key
			if len(r.buf) == 1 && r.buf[0] == 0x1b {
				r.emit(Event{Key: KeyEscape})
				r.buf = r.buf[:0]
			}
			continue
		}

		r.buf = append(r.buf, data...)
		consumed := r.parseInput(r.buf)

		if consumed >= len(r.buf) {
			r.buf = r.buf[:0]
		} else if consumed > 0 {
			copy(r.buf, r.buf[consumed:])
			r.buf = r.buf[:len(r.buf)-consumed]
		}
	}
}

// parseInput emits events for data and returns bytes consumed
// Stops at an incomplete escape sequence
func (r *inputReader) parseInput(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		switch {
		case b >= 0x20 && b < 0x7f:
			r.emit(Event{Key: KeyRune, Rune: b})
			i++

		case b == 0x1b:
			if i+1 >= n {
				return i
			}
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			if ev.Key != KeyNone {
				r.emit(ev)
			}
			i += consumed

		case b == 0x7f:
			r.emit(Event{Key: KeyBackspace})
			i++

		case b < 0x20:
			if ev := parseControl(b); ev.Key != KeyNone {
				r.emit(ev)
			}
			i++

		default:
			// No Unicode: UTF-8 and high bytes are dropped
			i++
		}
	}
	return i
}

// parseEscape parses an escape sequence, returning 0 when incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	switch data[1] {
	case 0x1b:
		return 1, Event{Key: KeyEscape}
	case '[':
		return parseCSI(data)
	case 'O':
		if len(data) < 3 {
			return 0, Event{}
		}
		k, _ := lookupSS3(data[2:3])
		return 3, Event{Key: k}
	}

	// Alt+key: the console has no Alt, deliver the key alone
	if data[1] >= 0x20 && data[1] < 0x7f {
		return 2, Event{Key: KeyRune, Rune: data[1]}
	}
	return 2, parseControl(data[1])
}

// parseCSI consumes a CSI sequence; unknown sequences return KeyNone
func parseCSI(data []byte) (int, Event) {
	const maxScan = 16

	for end := 2; end < len(data) && end < maxScan; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			k, _ := lookupCSI(data[2 : end+1])
			return end + 1, Event{Key: k}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed: drop the introducer
			return 2, Event{}
		}
	}
	if len(data) >= maxScan {
		return 2, Event{}
	}
	return 0, Event{}
}

// parseControl maps control characters to keys
func parseControl(b byte) Event {
	switch b {
	case 0x03:
		return Event{Key: KeyCtrlC}
	case 0x04:
		return Event{Key: KeyCtrlD}
	case 0x08:
		return Event{Key: KeyBackspace}
	case 0x09:
		return Event{Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Key: KeyEnter}
	}
	return Event{}
}
