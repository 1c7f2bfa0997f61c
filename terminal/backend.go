package terminal

import "errors"

// ErrNotTerminal is returned by Init when stdin is not a tty
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Backend is the host tty under a Machine
// The machine owns it exclusively: Write is called with the machine lock held,
// Read only from the input goroutine.
type Backend interface {
	// Init switches the tty to raw mode; Fini restores it
	Init() error
	Fini()

	// Size reports host columns and rows
	Size() (cols, rows int)

	Write(p []byte) error

	// Read returns the next chunk of input. It returns nil data with a nil
	// error when stopCh is closed or no byte arrived within one poll interval,
	// and io.EOF once the tty is gone.
	Read(stopCh <-chan struct{}) ([]byte, error)
}
