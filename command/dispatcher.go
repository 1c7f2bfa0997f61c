// Package command maps completed input lines to actions.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/kterm/display"
	"github.com/lixenwraith/kterm/history"
)

// Beeper plays a tone; satisfied by *audio.Speaker
type Beeper interface {
	Beep(freq float64, d time.Duration) error
}

// Env is what a command may touch
type Env struct {
	Display *display.Display
	History *history.Store
	Speaker Beeper // nil when sound is unavailable
	Session string
	Backend string
}

// Println writes s and a newline
func (e *Env) Println(s string) {
	e.Display.PutString(s)
	e.Display.PutNewline()
}

// Printf formats and writes a line
func (e *Env) Printf(format string, args ...any) {
	e.Println(fmt.Sprintf(format, args...))
}

// Command is one dispatch table entry
type Command struct {
	Name  string
	Usage string
	Help  string
	Run   func(env *Env, args []string)
}

// Dispatcher selects a command by the first word of a line
type Dispatcher struct {
	commands map[string]Command
	names    []string
}

// New returns an empty dispatcher
func New() *Dispatcher {
	return &Dispatcher{
		commands: make(map[string]Command),
	}
}

// Register adds a command; names must be unique single words
func (d *Dispatcher) Register(c Command) error {
	if c.Name == "" || strings.ContainsAny(c.Name, " \t") {
		return fmt.Errorf("invalid command name %q", c.Name)
	}
	if c.Run == nil {
		return fmt.Errorf("command %s: nil Run", c.Name)
	}
	if _, exists := d.commands[c.Name]; exists {
		return fmt.Errorf("command already registered: %s", c.Name)
	}
	d.commands[c.Name] = c
	d.names = append(d.names, c.Name)
	return nil
}

// Names returns command names in registration order
func (d *Dispatcher) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Lookup returns the command registered under name
func (d *Dispatcher) Lookup(name string) (Command, bool) {
	c, ok := d.commands[name]
	return c, ok
}

// Dispatch runs the command for line and reports whether one matched
// A blank line matches nothing and prints nothing
func (d *Dispatcher) Dispatch(env *Env, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	c, ok := d.commands[fields[0]]
	if !ok {
		env.Printf("unknown command: %s", line)
		return false
	}
	c.Run(env, fields[1:])
	return true
}
