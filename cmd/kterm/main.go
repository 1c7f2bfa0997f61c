package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/kterm/audio"
	"github.com/lixenwraith/kterm/config"
	"github.com/lixenwraith/kterm/console"
	"github.com/lixenwraith/kterm/display"
	"github.com/lixenwraith/kterm/keyboard"
	"github.com/lixenwraith/kterm/service"
	"github.com/lixenwraith/kterm/tcellio"
	"github.com/lixenwraith/kterm/terminal"
)

var (
	configFlag  = flag.String("config", config.DefaultPath, "Config file path")
	backendFlag = flag.String("backend", "", "Display backend: ansi, tcell (overrides config)")
	colorFlag   = flag.String("color", "auto", "ANSI color mode: auto, 16, 256, truecolor")
	debugFlag   = flag.Bool("debug", false, "Write debug log to logs/kterm.log")
	muteFlag    = flag.Bool("mute", false, "Disable the PC speaker")
)

// machine is what both host backends provide to the console
type machine interface {
	display.Surface
	console.Port
	Done() <-chan struct{}
	Err() error
}

func main() {
	// Restore the host terminal even if the console crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mKTERM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "kterm: %v\n", err)
		os.Exit(1)
	}

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "kterm: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers file, environment and flags, in that order
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
	}
	if *muteFlag {
		cfg.Speaker.Enabled = false
	}
	return cfg, cfg.Validate()
}

func resolveColorMode(name string) terminal.ColorMode {
	switch name {
	case "16":
		return terminal.ColorMode16
	case "256":
		return terminal.ColorMode256
	case "truecolor", "true", "24bit":
		return terminal.ColorModeTrueColor
	default:
		return terminal.DetectColorMode()
	}
}

// services holds what run needs from the registered host services
type services struct {
	host    func() machine
	speaker *audio.SpeakerService
	args    map[string][]any
}

// registerServices adds the configured host machine and the speaker to hub
func registerServices(hub *service.Hub, cfg config.Config, layout *keyboard.Layout) (services, error) {
	svcs := services{args: map[string][]any{}}

	switch cfg.Backend {
	case config.BackendTcell:
		svc := tcellio.NewService()
		if err := hub.Register(svc); err != nil {
			return svcs, err
		}
		svcs.args[svc.Name()] = []any{layout}
		svcs.host = func() machine { return svc.Machine() }
	default:
		svc := terminal.NewService()
		if err := hub.Register(svc); err != nil {
			return svcs, err
		}
		svcs.args[svc.Name()] = []any{resolveColorMode(*colorFlag), layout}
		svcs.host = func() machine {
			m := svc.Machine()
			log.Printf("kterm: ansi output, %s color", m.ColorMode())
			return m
		}
	}

	svcs.speaker = audio.NewService(cfg.SpeakerWave())
	if err := hub.Register(svcs.speaker); err != nil {
		return svcs, err
	}
	svcs.args[svcs.speaker.Name()] = []any{!cfg.Speaker.Enabled}
	return svcs, nil
}

func run(cfg config.Config) error {
	layout := keyboard.DefaultLayout
	hub := service.NewHub()

	svcs, err := registerServices(hub, cfg, layout)
	if err != nil {
		return err
	}

	if err := hub.InitAll(svcs.args); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	m := svcs.host()
	opts := console.Options{
		Prompt:       cfg.Prompt,
		Attr:         cfg.AttrByte(),
		Layout:       layout,
		Filter:       cfg.KeyboardFilter(),
		History:      cfg.HistoryPolicy(),
		Redraw:       cfg.RedrawMode(),
		BellOnReject: cfg.Speaker.BellOnReject,
		Backend:      cfg.Backend,
	}
	if sp := svcs.speaker.Speaker(); sp != nil {
		opts.Speaker = sp
	}

	term := console.New(m, m, opts)
	log.Printf("kterm: session %s on %s", term.Session(), cfg.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Ctrl+C in raw mode arrives as a key, not a signal
	go func() {
		select {
		case <-m.Done():
		case <-ctx.Done():
		}
		stop()
		if err := hub.StopAll(); err != nil {
			log.Printf("kterm: shutdown: %v", err)
		}
	}()

	if err := term.Run(ctx); err != nil {
		return err
	}

	if err := m.Err(); err != nil && !errors.Is(err, terminal.ErrInterrupted) {
		log.Printf("kterm: input closed: %v", err)
	}
	return nil
}
