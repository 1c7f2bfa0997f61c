// Package terminal emulates a PC text console on an ANSI terminal.
//
// The Machine exposes the two pieces of hardware the console core expects:
//   - VGA text memory: 80x25 cells of (character, attribute) bytes, rendered
//     to the host with cell-level diffing and VGA palette colors
//   - Keyboard data port: host key presses are translated into scancode
//     set 1 make/break sequences and queued for ReadScancode
//
// Raw mode, alternate screen and crash restoration follow xterm conventions.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
