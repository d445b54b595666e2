// Package loader discovers out-of-tree planner implementations built
// as Go plugins: *.so files whose init() registers a factory with
// internal/planner/registry, the same contract internal/planner/builtin
// satisfies in-tree.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"

	"github.com/elektrokombinacija/cleanbot-sim/internal/planner/registry"
)

// LoadDir scans dir (non-recursively) for *.so files, plugin.Opens
// each in lexical order, and relies on the module's own init() to call
// registry.Register. It returns the file names of the modules it
// opened; a module after whose open registry.Count() did not grow is
// marked "(registered nothing)", so the caller can log which files, if
// any, contributed nothing. The first module that fails to open stops
// the scan, and the names gathered so far are returned with the error.
func LoadDir(dir string) (loaded []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".so" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		before := registry.Count()
		if _, err := plugin.Open(path); err != nil {
			return loaded, fmt.Errorf("loader: opening %s: %w", path, err)
		}
		if registry.Count() == before {
			loaded = append(loaded, entry.Name()+" (registered nothing)")
			continue
		}
		loaded = append(loaded, entry.Name())
	}
	return loaded, nil
}
