package editor

import (
	"strings"
	"testing"

	"github.com/lixenwraith/kterm/constant"
	"github.com/lixenwraith/kterm/display"
)

func newTestEditor(prompt string, redraw Redraw) (*Editor, *display.Display, *display.MemorySurface) {
	s := display.NewMemorySurface()
	d := display.New(s, constant.AttrDefault)
	d.Clear()
	d.PutString(prompt)
	return New(d, prompt, redraw), d, s
}

func TestInsertChar_EchoesAndBuffers(t *testing.T) {
	e, d, s := newTestEditor("> ", RedrawLine)
	for _, c := range []byte("ls") {
		if !e.InsertChar(c) {
			t.Fatalf("InsertChar(%q) rejected", c)
		}
	}

	if e.String() != "ls" || e.Len() != 2 {
		t.Errorf("Expected buffer %q, got %q (len %d)", "ls", e.String(), e.Len())
	}
	if got := s.Row(0)[:4]; got != "> ls" {
		t.Errorf("Expected echo %q, got %q", "> ls", got)
	}
	if x, _ := d.Cursor(); x != 4 {
		t.Errorf("Expected cursor x=4, got %d", x)
	}
}

func TestInsertChar_CapacityBoundary(t *testing.T) {
	e, _, _ := newTestEditor("", RedrawLine)

	for i := 0; i < constant.InputCapacity-2; i++ {
		e.InsertChar('a')
	}
	if e.Len() != constant.InputCapacity-2 {
		t.Fatalf("Expected len %d, got %d", constant.InputCapacity-2, e.Len())
	}

	if !e.InsertChar('b') {
		t.Error("Insert at N-2 should succeed")
	}
	if e.Len() != constant.InputCapacity-1 {
		t.Errorf("Expected len %d, got %d", constant.InputCapacity-1, e.Len())
	}

	for i := 0; i < 5; i++ {
		if e.InsertChar('c') {
			t.Error("Insert at N-1 should be rejected")
		}
	}
	if e.Len() != constant.InputCapacity-1 {
		t.Errorf("Expected len to stay %d, got %d", constant.InputCapacity-1, e.Len())
	}
	if strings.ContainsRune(e.String(), 'c') {
		t.Error("Rejected characters must not be buffered")
	}
}

func TestBackspace(t *testing.T) {
	e, d, s := newTestEditor("> ", RedrawLine)
	e.InsertChar('a')
	e.InsertChar('b')
	e.Backspace()

	if e.String() != "a" {
		t.Errorf("Expected %q, got %q", "a", e.String())
	}
	if got := s.Row(0)[:4]; got != "> a " {
		t.Errorf("Expected %q on screen, got %q", "> a ", got)
	}
	if x, _ := d.Cursor(); x != 3 {
		t.Errorf("Expected cursor x=3, got %d", x)
	}
}

func TestBackspace_EmptyIsNoOp(t *testing.T) {
	e, d, s := newTestEditor("> ", RedrawLine)
	before := s.Row(0)
	bx, by := d.Cursor()

	e.Backspace()
	e.Backspace()

	if e.Len() != 0 {
		t.Errorf("Expected empty buffer, got %q", e.String())
	}
	if x, y := d.Cursor(); x != bx || y != by {
		t.Errorf("Cursor moved from (%d,%d) to (%d,%d)", bx, by, x, y)
	}
	if s.Row(0) != before {
		t.Error("Screen changed on empty backspace")
	}
}

func TestSubmit(t *testing.T) {
	e, _, _ := newTestEditor("", RedrawLine)
	for _, c := range []byte("echo hi") {
		e.InsertChar(c)
	}
	e.Backspace()
	e.InsertChar('o')

	if got := e.Submit(); got != "echo ho" {
		t.Errorf("Expected %q, got %q", "echo ho", got)
	}
	if e.Len() != 0 || e.String() != "" {
		t.Errorf("Expected empty buffer after submit, got %q", e.String())
	}
	if got := e.Submit(); got != "" {
		t.Errorf("Expected empty second submit, got %q", got)
	}
}

func TestLoad_LineRedraw(t *testing.T) {
	e, d, s := newTestEditor("> ", RedrawLine)
	d.PutString("\n> ")
	for _, c := range []byte("longer") {
		e.InsertChar(c)
	}

	e.Load("ab")

	if e.String() != "ab" {
		t.Errorf("Expected %q, got %q", "ab", e.String())
	}
	if got := s.Row(1)[:10]; got != "> ab      " {
		t.Errorf("Expected row %q, got %q", "> ab      ", got)
	}
	if got := s.Row(0)[:2]; got != "> " {
		t.Errorf("Line redraw must keep earlier rows, got %q", got)
	}
	if x, y := d.Cursor(); x != 4 || y != 1 {
		t.Errorf("Expected cursor (4,1), got (%d,%d)", x, y)
	}
}

func TestLoad_WrappedInputFallsBackToScreen(t *testing.T) {
	e, d, s := newTestEditor("> ", RedrawLine)
	for i := 0; i < display.Width; i++ {
		e.InsertChar('w')
	}
	// Echo now spans two rows
	e.Load("x")

	if got := s.Row(0)[:3]; got != "> x" {
		t.Errorf("Expected screen redraw %q, got %q", "> x", got)
	}
	if got := s.Row(1); got != strings.Repeat(" ", display.Width) {
		t.Errorf("Expected blank row 1, got %q", got)
	}
	if x, y := d.Cursor(); x != 3 || y != 0 {
		t.Errorf("Expected cursor (3,0), got (%d,%d)", x, y)
	}
}

func TestLoad_ScreenRedraw(t *testing.T) {
	e, d, s := newTestEditor("> ", RedrawScreen)
	d.PutString("\nsome output\n> ")
	e.InsertChar('q')

	e.Load("foo")

	if got := s.Row(0)[:5]; got != "> foo" {
		t.Errorf("Expected %q, got %q", "> foo", got)
	}
	if got := s.Row(1); got != strings.Repeat(" ", display.Width) {
		t.Errorf("Expected cleared screen below prompt, got %q", got)
	}
	if e.String() != "foo" {
		t.Errorf("Expected buffer %q, got %q", "foo", e.String())
	}
}

func TestLoad_EmptyLine(t *testing.T) {
	e, d, _ := newTestEditor("> ", RedrawLine)
	e.InsertChar('z')
	e.Load("")

	if e.Len() != 0 {
		t.Errorf("Expected empty buffer, got %q", e.String())
	}
	if x, _ := d.Cursor(); x != 2 {
		t.Errorf("Expected cursor after prompt, got x=%d", x)
	}
}

func TestLoad_Truncates(t *testing.T) {
	e, _, _ := newTestEditor("", RedrawScreen)
	e.Load(strings.Repeat("k", constant.InputCapacity+10))
	if e.Len() != constant.MaxLineLength {
		t.Errorf("Expected len %d, got %d", constant.MaxLineLength, e.Len())
	}
}
