// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Factory opens a new Device.
type Factory func() (Device, error)

// Registry errors.
var (
	ErrNoBackendAvailable = errors.New("device: no backend available")
	ErrBackendNotFound    = errors.New("device: backend not registered")
	ErrBackendUnavailable = errors.New("device: backend unavailable on this system")
)

// RegistryEntry is a registered backend. GPU backends use priority 100,
// the software rasterizer 10.
type RegistryEntry struct {
	Name      string
	Priority  int
	Factory   Factory
	Available func() bool
}

// Registry maps backend names to factories. Backends add themselves to the
// package registry from init.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]RegistryEntry
}

var backends = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]RegistryEntry)}
}

// Register adds a backend to the package registry. A nil available means
// always available. Registering a name again replaces the entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	backends.Register(name, priority, factory, available)
}

// Unregister removes a backend from the package registry.
func Unregister(name string) { backends.Unregister(name) }

// List returns the registered backend names, preferred first.
func List() []string { return backends.List() }

// Available returns the backends usable on this system, preferred first.
func Available() []string { return backends.Available() }

// Get returns the entry registered under name.
func Get(name string) (*RegistryEntry, bool) { return backends.Get(name) }

// Open opens a device on the named backend.
func Open(name string) (Device, error) { return backends.Open(name) }

// OpenBest opens a device on the first available backend that succeeds.
func OpenBest() (Device, error) { return backends.OpenBest() }

func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	r.entries[name] = RegistryEntry{Name: name, Priority: priority, Factory: factory, Available: available}
	r.mu.Unlock()
}

func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.entries, name)
	r.mu.Unlock()
}

func (r *Registry) List() []string { return r.names(false) }

func (r *Registry) Available() []string { return r.names(true) }

// Get returns a copy of the entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return &e, true
}

func (r *Registry) Open(name string) (Device, error) {
	e, ok := r.Get(name)
	switch {
	case !ok:
		return nil, fmt.Errorf("%w: %q", ErrBackendNotFound, name)
	case !e.Available():
		return nil, fmt.Errorf("%w: %q", ErrBackendUnavailable, name)
	}
	return e.Factory()
}

// OpenBest tries the available backends by priority. When all of them
// fail the factory errors are joined.
func (r *Registry) OpenBest() (Device, error) {
	names := r.Available()
	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}
	var errs []error
	for _, name := range names {
		d, err := r.Open(name)
		if err == nil {
			return d, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return nil, errors.Join(errs...)
}

// names orders by priority, then by name.
func (r *Registry) names(onlyAvailable bool) []string {
	r.mu.RLock()
	entries := make([]RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b RegistryEntry) int {
		return cmp.Or(cmp.Compare(b.Priority, a.Priority), cmp.Compare(a.Name, b.Name))
	})
	var names []string
	for _, e := range entries {
		if !onlyAvailable || e.Available() {
			names = append(names, e.Name)
		}
	}
	return names
}
