package database

import (
	"fmt"
	"sync"
)

// ManagerFactory is a function that creates a manager rooted at a
// filesystem path.
type ManagerFactory func(path string) (Manager, error)

var (
	backendMu        sync.RWMutex
	backendFactories = make(map[string]ManagerFactory)
)

// RegisterBackend registers a manager factory with the given name.
// Backends call this from init.
func RegisterBackend(name string, factory ManagerFactory) {
	backendMu.Lock()
	defer backendMu.Unlock()
	backendFactories[name] = factory
}

// NewManager creates a manager for the named backend rooted at path.
func NewManager(name, path string) (Manager, error) {
	backendMu.RLock()
	factory, ok := backendFactories[name]
	backendMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown database backend: %s", name)
	}
	return factory(path)
}

// AvailableBackends returns a list of registered backend names.
func AvailableBackends() []string {
	backendMu.RLock()
	defer backendMu.RUnlock()

	names := make([]string, 0, len(backendFactories))
	for name := range backendFactories {
		names = append(names, name)
	}
	return names
}
