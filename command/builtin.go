package command

import (
	"strconv"
	"strings"
	"time"
)

const (
	defaultBeepFrequency = 1000
	defaultBeepDuration  = 100 * time.Millisecond
)

// NewBuiltin returns a dispatcher with the standard commands
func NewBuiltin() *Dispatcher {
	d := New()
	for _, c := range builtins(d) {
		if err := d.Register(c); err != nil {
			panic(err)
		}
	}
	return d
}

func builtins(d *Dispatcher) []Command {
	return []Command{
		{
			Name: "help",
			Help: "list commands",
			Run: func(env *Env, _ []string) {
				env.Println("commands:")
				for _, name := range d.Names() {
					c := d.commands[name]
					usage := c.Name
					if c.Usage != "" {
						usage += " " + c.Usage
					}
					env.Printf("  %-16s %s", usage, c.Help)
				}
			},
		},
		{
			Name: "clear",
			Help: "clear the screen",
			Run: func(env *Env, _ []string) {
				env.Display.Clear()
			},
		},
		{
			Name: "history",
			Help: "list previous commands",
			Run: func(env *Env, _ []string) {
				for i, line := range env.History.Entries() {
					env.Printf("%3d  %s", i+1, line)
				}
			},
		},
		{
			Name:  "echo",
			Usage: "[text]",
			Help:  "print text",
			Run: func(env *Env, args []string) {
				env.Println(strings.Join(args, " "))
			},
		},
		{
			Name:  "beep",
			Usage: "[hz] [ms]",
			Help:  "sound the speaker",
			Run:   runBeep,
		},
		{
			Name: "session",
			Help: "show session id and backend",
			Run: func(env *Env, _ []string) {
				env.Printf("session %s on %s", env.Session, env.Backend)
			},
		},
	}
}

func runBeep(env *Env, args []string) {
	freq := float64(defaultBeepFrequency)
	dur := defaultBeepDuration

	if len(args) > 0 {
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil || f <= 0 {
			env.Printf("beep: invalid frequency %q", args[0])
			return
		}
		freq = f
	}
	if len(args) > 1 {
		ms, err := strconv.Atoi(args[1])
		if err != nil || ms <= 0 {
			env.Printf("beep: invalid duration %q", args[1])
			return
		}
		dur = time.Duration(ms) * time.Millisecond
	}

	if env.Speaker == nil {
		env.Println("beep: speaker disabled")
		return
	}
	if err := env.Speaker.Beep(freq, dur); err != nil {
		env.Printf("beep: %v", err)
	}
}
