//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// readTimeout is also how long a lone ESC waits for the rest of a sequence
const readTimeout = 100 * time.Millisecond

// ttyBackend drives the controlling terminal through stdin and stdout
type ttyBackend struct {
	in, out *os.File
	saved   *term.State
	buf     [256]byte
}

func newBackend() Backend {
	return &ttyBackend{in: os.Stdin, out: os.Stdout}
}

func (b *ttyBackend) fd() int {
	return int(b.in.Fd())
}

func (b *ttyBackend) Init() error {
	if !term.IsTerminal(b.fd()) {
		return ErrNotTerminal
	}
	saved, err := term.MakeRaw(b.fd())
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	b.saved = saved
	return nil
}

func (b *ttyBackend) Fini() {
	if b.saved == nil {
		return
	}
	term.Restore(b.fd(), b.saved)
	b.saved = nil
}

// Size falls back to the console geometry when the host will not say
func (b *ttyBackend) Size() (int, int) {
	cols, rows, err := term.GetSize(int(b.out.Fd()))
	if err != nil {
		return 80, 25
	}
	return cols, rows
}

func (b *ttyBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		ready, err := b.wait()
		if err != nil {
			return nil, err
		}
		if !ready {
			return nil, nil
		}

		n, err := unix.Read(b.fd(), b.buf[:])
		switch {
		case errors.Is(err, unix.EINTR), errors.Is(err, unix.EAGAIN):
			continue
		case err != nil:
			return nil, err
		case n == 0:
			return nil, io.EOF
		}
		return append([]byte(nil), b.buf[:n]...), nil
	}
}

// wait polls stdin for one readTimeout; EINTR counts as a timeout
func (b *ttyBackend) wait() (bool, error) {
	fds := []unix.PollFd{{Fd: int32(b.fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(readTimeout/time.Millisecond))
	if errors.Is(err, unix.EINTR) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("poll stdin: %w", err)
	}
	return n > 0, nil
}
