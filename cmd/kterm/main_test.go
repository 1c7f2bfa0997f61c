package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/kterm/audio"
	"github.com/lixenwraith/kterm/config"
	"github.com/lixenwraith/kterm/keyboard"
	"github.com/lixenwraith/kterm/service"
	"github.com/lixenwraith/kterm/terminal"
)

func TestResolveColorMode(t *testing.T) {
	tests := map[string]terminal.ColorMode{
		"16":        terminal.ColorMode16,
		"256":       terminal.ColorMode256,
		"truecolor": terminal.ColorModeTrueColor,
		"24bit":     terminal.ColorModeTrueColor,
	}
	for name, want := range tests {
		if got := resolveColorMode(name); got != want {
			t.Errorf("%s: expected %s, got %s", name, want, got)
		}
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kterm.toml")
	text := "backend = \"ansi\"\n[speaker]\nenabled = true\n"
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	*configFlag, *backendFlag, *muteFlag = path, "tcell", true
	defer func() { *configFlag, *backendFlag, *muteFlag = config.DefaultPath, "", false }()
	t.Setenv("KTERM_BACKEND", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Backend != config.BackendTcell {
		t.Errorf("Expected flag backend, got %q", cfg.Backend)
	}
	if cfg.Speaker.Enabled {
		t.Error("Expected -mute to disable the speaker")
	}
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	*configFlag, *backendFlag = filepath.Join(t.TempDir(), "none.toml"), "vga"
	defer func() { *configFlag, *backendFlag = config.DefaultPath, "" }()

	if _, err := loadConfig(); !errors.Is(err, config.ErrUnknownBackend) {
		t.Errorf("Expected ErrUnknownBackend, got %v", err)
	}
}

func TestRegisterServices(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendTcell
	hub := service.NewHub()

	svcs, err := registerServices(hub, cfg, keyboard.DefaultLayout)
	if err != nil {
		t.Fatalf("registerServices: %v", err)
	}
	if got := strings.Join(hub.Names(), " "); got != "tcell speaker" {
		t.Errorf("Expected tcell and speaker, got %q", got)
	}
	if muted := svcs.args["speaker"]; len(muted) != 1 || muted[0] != true {
		t.Errorf("Expected speaker muted by default, got %v", muted)
	}
}

func TestRegisterServices_NameClash(t *testing.T) {
	hub := service.NewHub()
	if err := hub.Register(audio.NewService(audio.WaveSquare)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := registerServices(hub, config.Default(), keyboard.DefaultLayout); err == nil {
		t.Error("Expected error for duplicate speaker service")
	}
}
