package tcellio

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/kterm/keyboard"
)

// MachineService manages the tcell machine lifecycle
type MachineService struct {
	machine *Machine
	screen  tcell.Screen // nil selects tcell.NewScreen
}

// NewService creates a new tcell service
func NewService() *MachineService {
	return &MachineService{}
}

// Name implements Service
func (s *MachineService) Name() string {
	return "tcell"
}

// Dependencies implements Service
func (s *MachineService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: *keyboard.Layout (optional, defaults to keyboard.DefaultLayout)
func (s *MachineService) Init(args ...any) error {
	var layout *keyboard.Layout
	if len(args) > 0 {
		if l, ok := args[0].(*keyboard.Layout); ok {
			layout = l
		}
	}

	if s.screen != nil {
		s.machine = newMachine(s.screen, layout)
		return nil
	}
	m, err := New(layout)
	if err != nil {
		return err
	}
	s.machine = m
	return nil
}

// Start implements Service
func (s *MachineService) Start() error {
	if s.machine == nil {
		return fmt.Errorf("tcell: not initialized")
	}
	return s.machine.Init()
}

// Stop implements Service
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
