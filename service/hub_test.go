package service

import (
	"errors"
	"strings"
	"testing"
)

// recorder logs lifecycle calls into a shared journal
type recorder struct {
	name    string
	deps    []string
	journal *[]string
	initErr error
	failOn  string
	stopErr error
	args    []any
}

func (r *recorder) Name() string           { return r.name }
func (r *recorder) Dependencies() []string { return r.deps }

func (r *recorder) Init(args ...any) error {
	r.args = args
	*r.journal = append(*r.journal, "init:"+r.name)
	return r.initErr
}

func (r *recorder) Start() error {
	*r.journal = append(*r.journal, "start:"+r.name)
	if r.failOn == "start" {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) Stop() error {
	*r.journal = append(*r.journal, "stop:"+r.name)
	return r.stopErr
}

func TestHub_DependencyOrder(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "console", deps: []string{"terminal", "speaker"}, journal: &journal})
	h.Register(&recorder{name: "terminal", journal: &journal})
	h.Register(&recorder{name: "speaker", journal: &journal})

	if err := h.InitAll(nil); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	h.StopAll()

	want := "init:terminal init:speaker init:console " +
		"start:terminal start:speaker start:console " +
		"stop:console stop:speaker stop:terminal"
	if got := strings.Join(journal, " "); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestHub_InitArgs(t *testing.T) {
	var journal []string
	h := NewHub()
	r := &recorder{name: "speaker", journal: &journal}
	h.Register(r)

	if err := h.InitAll(map[string][]any{"speaker": {true}}); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if len(r.args) != 1 || r.args[0] != true {
		t.Errorf("Expected args [true], got %v", r.args)
	}
}

func TestHub_DuplicateRegister(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "a", journal: &journal})
	if err := h.Register(&recorder{name: "a", journal: &journal}); err == nil {
		t.Error("Expected duplicate error")
	}
}

func TestHub_MissingAndCircular(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "a", deps: []string{"ghost"}, journal: &journal})
	if err := h.InitAll(nil); err == nil {
		t.Error("Expected missing dependency error")
	}

	h = NewHub()
	h.Register(&recorder{name: "a", deps: []string{"b"}, journal: &journal})
	h.Register(&recorder{name: "b", deps: []string{"a"}, journal: &journal})
	if err := h.InitAll(nil); err == nil {
		t.Error("Expected circular dependency error")
	}
}

func TestHub_InitRollback(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "a", journal: &journal})
	h.Register(&recorder{name: "b", deps: []string{"a"}, journal: &journal, initErr: errors.New("bad")})

	if err := h.InitAll(nil); err == nil {
		t.Fatal("Expected init failure")
	}
	want := "init:a init:b stop:a"
	if got := strings.Join(journal, " "); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestHub_StartRollback(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "a", journal: &journal})
	h.Register(&recorder{name: "b", deps: []string{"a"}, journal: &journal, failOn: "start"})

	h.InitAll(nil)
	journal = journal[:0]
	if err := h.StartAll(); err == nil {
		t.Fatal("Expected start failure")
	}
	want := "start:a start:b stop:a"
	if got := strings.Join(journal, " "); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	// Nothing left running
	journal = journal[:0]
	h.StopAll()
	if len(journal) != 0 {
		t.Errorf("Expected no stops, got %v", journal)
	}
}

func TestMustGet(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "a", journal: &journal})

	if r := MustGet[*recorder](h, "a"); r.name != "a" {
		t.Errorf("Expected recorder a, got %q", r.name)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for missing service")
		}
	}()
	MustGet[*recorder](h, "missing")
}

func TestHub_StopAllJoinsErrors(t *testing.T) {
	var journal []string
	errA, errB := errors.New("a busy"), errors.New("b busy")
	h := NewHub()
	h.Register(&recorder{name: "a", journal: &journal, stopErr: errA})
	h.Register(&recorder{name: "b", journal: &journal, stopErr: errB})

	h.InitAll(nil)
	h.StartAll()
	journal = journal[:0]

	err := h.StopAll()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Expected both stop errors, got %v", err)
	}
	if got := strings.Join(journal, " "); got != "stop:b stop:a" {
		t.Errorf("Expected reverse stop order, got %q", got)
	}
	if err := h.StopAll(); err != nil {
		t.Errorf("Expected second StopAll to be a no-op, got %v", err)
	}
}

func TestHub_StartBeforeInit(t *testing.T) {
	h := NewHub()
	h.Register(&recorder{name: "a", journal: new([]string)})
	if err := h.StartAll(); err == nil {
		t.Error("Expected error starting uninitialized hub")
	}
}
