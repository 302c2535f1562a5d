package layout

import (
	"sort"
	"strings"
	"sync"

	"github.com/polarmerge/polarmerge/pkg/errors"
)

// registry holds the named layouts. The stock vendor layout is always
// present; custom layouts register at startup or load from YAML files.
var (
	registryMu sync.RWMutex
	registry   = map[string]Layout{
		Default().Name: Default(),
	}
)

// Get returns the named layout. Unknown names fail with a ConfigurationError
// listing the registered layouts.
func Get(name string) (Layout, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	l, ok := registry[name]
	if !ok {
		return Layout{}, errors.NewConfigurationError("layout", name,
			"unknown layout, known layouts: "+strings.Join(namesLocked(), ", "))
	}
	return l, nil
}

// Register adds a layout to the registry, replacing any previous layout with
// the same name. The layout must validate and carry a name.
func Register(l Layout) error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.NewConfigurationError("layout", l.Name, "registered layout needs a name")
	}
	if err := l.Validate(); err != nil {
		return err
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[l.Name] = l
	return nil
}

// Names returns the registered layout names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

// All returns the registered layouts sorted by name.
func All() []Layout {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Layout, 0, len(registry))
	for _, name := range namesLocked() {
		out = append(out, registry[name])
	}
	return out
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
