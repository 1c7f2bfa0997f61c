package terminal

import (
	"fmt"

	"github.com/lixenwraith/kterm/keyboard"
)

// MachineService manages the machine lifecycle
type MachineService struct {
	machine   *Machine
	colorMode ColorMode
	layout    *keyboard.Layout
	backend   Backend // nil selects the platform backend
}

// NewService creates a new terminal service
func NewService() *MachineService {
	return &MachineService{}
}

// Name implements Service
func (s *MachineService) Name() string {
	return "terminal"
}

// Dependencies implements Service
func (s *MachineService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: ColorMode (optional, defaults to DetectColorMode())
// args[1]: *keyboard.Layout (optional, defaults to keyboard.DefaultLayout)
func (s *MachineService) Init(args ...any) error {
	s.colorMode = DetectColorMode()
	if len(args) > 0 {
		if cm, ok := args[0].(ColorMode); ok {
			s.colorMode = cm
		}
	}
	if len(args) > 1 {
		if l, ok := args[1].(*keyboard.Layout); ok {
			s.layout = l
		}
	}

	b := s.backend
	if b == nil {
		b = newBackend()
	}
	s.machine = newMachine(b, s.colorMode, s.layout)
	return nil
}

// Start implements Service - enters raw mode and launches the key reader
func (s *MachineService) Start() error {
	if s.machine == nil {
		return fmt.Errorf("terminal: not initialized")
	}
	if err := s.machine.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	return nil
}

// Stop implements Service - stops input and restores the terminal
func (s *MachineService) Stop() error {
	if s.machine != nil {
		s.machine.Fini()
	}
	return nil
}

// Machine returns the wrapped machine
func (s *MachineService) Machine() *Machine {
	return s.machine
}
