//go:build unix

package terminal

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Emulators known to render 24-bit SGR without advertising it in TERM
var trueColorHosts = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_PANE",
}

// DetectColorMode picks the richest mode the host terminal advertises
func DetectColorMode() ColorMode {
	return detectColorMode(os.Getenv)
}

func detectColorMode(getenv func(string) string) ColorMode {
	switch getenv("COLORTERM") {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}
	for _, name := range trueColorHosts {
		if getenv(name) != "" {
			return ColorModeTrueColor
		}
	}

	termName := getenv("TERM")
	for _, marker := range []string{"truecolor", "24bit", "direct"} {
		if strings.Contains(termName, marker) {
			return ColorModeTrueColor
		}
	}
	if strings.Contains(termName, "256color") {
		return ColorMode256
	}
	return ColorMode16
}

// resetTerminalMode turns echo, canonical input and signals back on for the
// controlling tty. Crash path only, errors are ignored.
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return
	}
	tio.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	tio.Iflag |= unix.ICRNL
	unix.IoctlSetTermios(fd, unix.TCSETS, tio)
}
