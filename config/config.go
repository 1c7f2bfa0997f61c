// Package config loads kterm settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/kterm/audio"
	"github.com/lixenwraith/kterm/constant"
	"github.com/lixenwraith/kterm/editor"
	"github.com/lixenwraith/kterm/history"
	"github.com/lixenwraith/kterm/keyboard"
)

// DefaultPath is read when no -config flag is given
const DefaultPath = "kterm.toml"

// Backend names
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

var (
	ErrUnknownBackend  = errors.New("unknown backend")
	ErrUnknownFilter   = errors.New("unknown keyboard filter")
	ErrUnknownOverflow = errors.New("unknown history overflow policy")
	ErrUnknownRedraw   = errors.New("unknown redraw mode")
	ErrUnknownWave     = errors.New("unknown speaker wave")
	ErrInvalidAttr     = errors.New("attribute out of range")
	ErrUnknownKey      = errors.New("unknown config key")
)

// Config is the complete runtime configuration
type Config struct {
	Backend  string         `toml:"backend"`
	Prompt   string         `toml:"prompt"`
	Attr     int            `toml:"attr"`
	Keyboard KeyboardConfig `toml:"keyboard"`
	History  HistoryConfig  `toml:"history"`
	Editor   EditorConfig   `toml:"editor"`
	Speaker  SpeakerConfig  `toml:"speaker"`
}

type KeyboardConfig struct {
	Filter string `toml:"filter"` // held | last
}

type HistoryConfig struct {
	Overflow       string `toml:"overflow"` // evict | reject
	DedupeAdjacent bool   `toml:"dedupe_adjacent"`
}

type EditorConfig struct {
	Redraw string `toml:"redraw"` // line | screen
}

type SpeakerConfig struct {
	Enabled      bool   `toml:"enabled"`
	BellOnReject bool   `toml:"bell_on_reject"`
	Wave         string `toml:"wave"` // square | sine
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Backend:  BackendANSI,
		Prompt:   constant.DefaultPrompt,
		Attr:     int(constant.AttrDefault),
		Keyboard: KeyboardConfig{Filter: "held"},
		History:  HistoryConfig{Overflow: "evict", DedupeAdjacent: true},
		Editor:   EditorConfig{Redraw: "line"},
		Speaker:  SpeakerConfig{Wave: "square"},
	}
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text over the defaults and validates the result
func Parse(text string) (Config, error) {
	cfg := Default()

	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from KTERM_* variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("KTERM_BACKEND"); ok && v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v, ok := lookup("KTERM_PROMPT"); ok {
		c.Prompt = v
	}
}

// Validate rejects unknown enum values and out-of-range numbers
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if c.Attr < 1 || c.Attr > 0xFF {
		return fmt.Errorf("%w: %#x", ErrInvalidAttr, c.Attr)
	}
	if len(c.Prompt) >= constant.ScreenWidth {
		return fmt.Errorf("prompt longer than %d columns", constant.ScreenWidth-1)
	}
	if _, ok := filters[c.Keyboard.Filter]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, c.Keyboard.Filter)
	}
	if _, ok := overflows[c.History.Overflow]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOverflow, c.History.Overflow)
	}
	if _, ok := redraws[c.Editor.Redraw]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRedraw, c.Editor.Redraw)
	}
	if _, ok := waves[c.Speaker.Wave]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWave, c.Speaker.Wave)
	}
	return nil
}

var (
	filters = map[string]keyboard.Filter{
		"held": keyboard.FilterHeld,
		"last": keyboard.FilterLastCode,
	}
	overflows = map[string]history.Overflow{
		"evict":  history.EvictOldest,
		"reject": history.RejectNew,
	}
	redraws = map[string]editor.Redraw{
		"line":   editor.RedrawLine,
		"screen": editor.RedrawScreen,
	}
	waves = map[string]audio.Wave{
		"square": audio.WaveSquare,
		"sine":   audio.WaveSine,
	}
)

// AttrByte returns the display attribute
func (c *Config) AttrByte() byte {
	return byte(c.Attr)
}

// KeyboardFilter returns the decoder repeat filter
func (c *Config) KeyboardFilter() keyboard.Filter {
	return filters[c.Keyboard.Filter]
}

// HistoryPolicy returns the history store policy
func (c *Config) HistoryPolicy() history.Policy {
	p := history.DefaultPolicy()
	p.Overflow = overflows[c.History.Overflow]
	p.DedupeAdjacent = c.History.DedupeAdjacent
	return p
}

// RedrawMode returns how recalled lines are redrawn
func (c *Config) RedrawMode() editor.Redraw {
	return redraws[c.Editor.Redraw]
}

// SpeakerWave returns the speaker waveform
func (c *Config) SpeakerWave() audio.Wave {
	return waves[c.Speaker.Wave]
}
