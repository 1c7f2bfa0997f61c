package service

import (
	"errors"
	"fmt"
	"sync"
)

// Hub owns the host services and runs them through their lifecycle
// Start order is topological over Dependencies, ties broken by registration
// order; Stop runs in reverse.
type Hub struct {
	mu       sync.RWMutex
	services map[string]Service
	order    []string // registration order
	sorted   []string // nil until InitAll succeeds
	running  []string // started, in start order
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{services: make(map[string]Service)}
}

// Register adds svc; names must be unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, dup := h.services[name]; dup {
		return fmt.Errorf("service already registered: %s", name)
	}
	h.services[name] = svc
	h.order = append(h.order, name)
	h.sorted = nil
	return nil
}

// Get returns the service registered under name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	return svc, ok
}

// MustGet returns the named service as T, panicking when absent or of another type
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// Names returns service names in registration order
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.order...)
}

// InitAll orders the services and calls Init with args[name]
// A failing Init stops the services already initialized, newest first
func (h *Hub) InitAll(args map[string][]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, err := h.resolve()
	if err != nil {
		return err
	}

	for i, name := range order {
		if err := h.services[name].Init(args[name]...); err != nil {
			h.stopReverse(order[:i])
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
	}
	h.sorted = order
	return nil
}

// StartAll starts every service in dependency order
// A failing Start stops the services already started, newest first
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		return errors.New("services not initialized")
	}

	h.running = h.running[:0]
	for _, name := range h.sorted {
		if err := h.services[name].Start(); err != nil {
			h.stopReverse(h.running)
			h.running = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.running = append(h.running, name)
	}
	return nil
}

// StopAll stops running services in reverse start order and returns every
// Stop error joined; calling it again is a no-op
func (h *Hub) StopAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.stopReverse(h.running)
	h.running = nil
	return err
}

func (h *Hub) stopReverse(names []string) error {
	var errs []error
	for i := len(names) - 1; i >= 0; i-- {
		if err := h.services[names[i]].Stop(); err != nil {
			errs = append(errs, fmt.Errorf("service %s stop: %w", names[i], err))
		}
	}
	return errors.Join(errs...)
}

// resolve runs Kahn's algorithm over Dependencies, seeding and releasing
// nodes in registration order
func (h *Hub) resolve() ([]string, error) {
	pending := make(map[string]int, len(h.order))
	dependents := make(map[string][]string)

	for _, name := range h.order {
		deps := h.services[name].Dependencies()
		for _, dep := range deps {
			if _, ok := h.services[dep]; !ok {
				return nil, fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			dependents[dep] = append(dependents[dep], name)
		}
		pending[name] = len(deps)
	}

	queue := make([]string, 0, len(h.order))
	for _, name := range h.order {
		if pending[name] == 0 {
			queue = append(queue, name)
		}
	}

	for i := 0; i < len(queue); i++ {
		for _, next := range dependents[queue[i]] {
			if pending[next]--; pending[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(queue) != len(h.order) {
		return nil, errors.New("circular dependency detected in services")
	}
	return queue, nil
}
