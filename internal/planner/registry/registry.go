// Package registry is the process-wide, write-once registrar of
// planner factories. Built-in strategies register themselves from
// init(); out-of-tree strategies arrive the same way via
// internal/planner/loader, which plugin.Opens a directory of .so
// files and relies on each one's own init() to call Register.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/elektrokombinacija/cleanbot-sim/internal/planner"
)

var (
	mu        sync.RWMutex
	factories = make(map[string]func() planner.Planner)
)

// Register adds a named planner factory. It panics if name is already
// registered: a duplicate name is a build-time/startup configuration
// error, not a runtime condition callers should handle.
func Register(name string, factory func() planner.Planner) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: planner %q already registered", name))
	}
	factories[name] = factory
}

// Count returns the number of currently registered factories. The
// loader diffs this before and after plugin.Open to detect .so files
// whose init() never called Register.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(factories)
}

// New constructs a fresh planner instance for name, or reports ok=false
// if no factory is registered under that name.
func New(name string) (planner.Planner, bool) {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Names returns every registered planner name, sorted, for CLI
// discovery and error messages.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
