package command

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/kterm/constant"
	"github.com/lixenwraith/kterm/display"
	"github.com/lixenwraith/kterm/history"
)

type fakeBeeper struct {
	freq float64
	dur  time.Duration
	err  error
}

func (f *fakeBeeper) Beep(freq float64, d time.Duration) error {
	f.freq, f.dur = freq, d
	return f.err
}

func newTestEnv() (*Env, *display.MemorySurface) {
	s := display.NewMemorySurface()
	d := display.New(s, constant.AttrDefault)
	d.Clear()
	return &Env{
		Display: d,
		History: history.New(history.DefaultPolicy()),
		Session: "abc",
		Backend: "memory",
	}, s
}

func screenText(s *display.MemorySurface) string {
	var b strings.Builder
	for y := 0; y < display.Height; y++ {
		b.WriteString(strings.TrimRight(s.Row(y), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestRegister_Validation(t *testing.T) {
	d := New()
	noop := func(*Env, []string) {}

	if err := d.Register(Command{Name: "ok", Run: noop}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := d.Register(Command{Name: "ok", Run: noop}); err == nil {
		t.Error("Expected duplicate error")
	}
	if err := d.Register(Command{Name: "two words", Run: noop}); err == nil {
		t.Error("Expected invalid name error")
	}
	if err := d.Register(Command{Name: "nil"}); err == nil {
		t.Error("Expected nil Run error")
	}
}

func TestDispatch_ExactMatchAndArgs(t *testing.T) {
	d := New()
	var gotArgs []string
	calls := 0
	d.Register(Command{Name: "run", Run: func(_ *Env, args []string) {
		calls++
		gotArgs = args
	}})

	env, _ := newTestEnv()
	if !d.Dispatch(env, "  run a  b ") {
		t.Fatal("Expected match")
	}
	if calls != 1 || len(gotArgs) != 2 || gotArgs[0] != "a" || gotArgs[1] != "b" {
		t.Errorf("Expected one call with [a b], got %d calls with %v", calls, gotArgs)
	}
	if d.Dispatch(env, "runner") {
		t.Error("Prefix must not match")
	}
}

func TestDispatch_Unknown(t *testing.T) {
	d := NewBuiltin()
	env, s := newTestEnv()

	if d.Dispatch(env, "frobnicate now") {
		t.Error("Unknown command reported as matched")
	}
	if got := strings.TrimRight(s.Row(0), " "); got != "unknown command: frobnicate now" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestDispatch_BlankLine(t *testing.T) {
	d := NewBuiltin()
	env, _ := newTestEnv()

	if d.Dispatch(env, "   ") {
		t.Error("Blank line should not match")
	}
	if x, y := env.Display.Cursor(); x != 0 || y != 0 {
		t.Errorf("Blank line printed output, cursor at (%d,%d)", x, y)
	}
}

func TestBuiltin_Help(t *testing.T) {
	d := NewBuiltin()
	env, s := newTestEnv()
	d.Dispatch(env, "help")

	text := screenText(s)
	for _, name := range []string{"help", "clear", "history", "echo", "beep", "session"} {
		if !strings.Contains(text, "  "+name) {
			t.Errorf("help output missing %s:\n%s", name, text)
		}
	}
}

func TestBuiltin_Clear(t *testing.T) {
	d := NewBuiltin()
	env, s := newTestEnv()
	env.Display.PutString("junk\nmore junk")

	d.Dispatch(env, "clear")

	if x, y := env.Display.Cursor(); x != 0 || y != 0 {
		t.Errorf("Expected cursor (0,0), got (%d,%d)", x, y)
	}
	if strings.TrimSpace(screenText(s)) != "" {
		t.Error("Expected blank screen")
	}
}

func TestBuiltin_History(t *testing.T) {
	d := NewBuiltin()
	env, s := newTestEnv()
	env.History.Push("ls")
	env.History.Push("echo hi")

	d.Dispatch(env, "history")

	if got := strings.TrimRight(s.Row(0), " "); got != "  1  ls" {
		t.Errorf("Row 0: got %q", got)
	}
	if got := strings.TrimRight(s.Row(1), " "); got != "  2  echo hi" {
		t.Errorf("Row 1: got %q", got)
	}
}

func TestBuiltin_Echo(t *testing.T) {
	d := NewBuiltin()
	env, s := newTestEnv()
	d.Dispatch(env, "echo hello   world")

	if got := strings.TrimRight(s.Row(0), " "); got != "hello world" {
		t.Errorf("Expected %q, got %q", "hello world", got)
	}
	if x, y := env.Display.Cursor(); x != 0 || y != 1 {
		t.Errorf("Expected cursor on next line, got (%d,%d)", x, y)
	}
}

func TestBuiltin_Beep(t *testing.T) {
	tests := []struct {
		line     string
		beeper   *fakeBeeper
		wantFreq float64
		wantDur  time.Duration
		wantOut  string
	}{
		{"beep", &fakeBeeper{}, 1000, 100 * time.Millisecond, ""},
		{"beep 440 250", &fakeBeeper{}, 440, 250 * time.Millisecond, ""},
		{"beep x", &fakeBeeper{}, 0, 0, `beep: invalid frequency "x"`},
		{"beep 440 -1", &fakeBeeper{}, 0, 0, `beep: invalid duration "-1"`},
		{"beep", nil, 0, 0, "beep: speaker disabled"},
		{"beep", &fakeBeeper{err: errors.New("boom")}, 1000, 100 * time.Millisecond, "beep: boom"},
	}

	for _, tt := range tests {
		d := NewBuiltin()
		env, s := newTestEnv()
		if tt.beeper != nil {
			env.Speaker = tt.beeper
		}
		d.Dispatch(env, tt.line)

		if got := strings.TrimRight(s.Row(0), " "); got != tt.wantOut {
			t.Errorf("%q: expected output %q, got %q", tt.line, tt.wantOut, got)
		}
		if tt.beeper != nil && (tt.beeper.freq != tt.wantFreq || tt.beeper.dur != tt.wantDur) {
			t.Errorf("%q: expected beep %v/%v, got %v/%v", tt.line, tt.wantFreq, tt.wantDur, tt.beeper.freq, tt.beeper.dur)
		}
	}
}

func TestBuiltin_Session(t *testing.T) {
	d := NewBuiltin()
	env, s := newTestEnv()
	d.Dispatch(env, "session")

	if got := strings.TrimRight(s.Row(0), " "); got != "session abc on memory" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestNames_RegistrationOrder(t *testing.T) {
	names := NewBuiltin().Names()
	if len(names) != 6 || names[0] != "help" || names[1] != "clear" {
		t.Errorf("Unexpected names %v", names)
	}
}
