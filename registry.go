package zninit

import (
	"sort"
	"sync"

	"github.com/zincware/zninit/zerrors"
)

// registry tracks every class declared in the process, keyed by name.
type registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

var defaultRegistry = &registry{classes: make(map[string]*Class)}

func (r *registry) register(c *Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classes[c.name]; exists {
		return &zerrors.ConfigurationError{Class: c.name, Reason: "class is already registered"}
	}
	r.classes[c.name] = c
	return nil
}

// Lookup finds a declared class by name.
func Lookup(name string) (*Class, bool) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	cls, ok := defaultRegistry.classes[name]
	return cls, ok
}

// Classes returns the names of all declared classes, sorted.
func Classes() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	names := make([]string, 0, len(defaultRegistry.classes))
	for name := range defaultRegistry.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears the class registry (used for testing).
func Reset() {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.classes = make(map[string]*Class)
}
