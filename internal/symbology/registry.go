package symbology

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownFormat is returned by Get for format names nothing registered.
var ErrUnknownFormat = errors.New("unknown barcode format")

var (
	registry   = make(map[string]Definition)
	registryMu sync.RWMutex
)

// Register adds a symbology definition to the registry.
// Keys are case-insensitive. Panics if the key is already registered.
func Register(def Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	key := strings.ToLower(def.Key)
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("symbology already registered: %s", key))
	}
	if def.Encode == nil {
		panic(fmt.Sprintf("symbology %s has no encoder", key))
	}

	def.Key = key
	registry[key] = def
}

// Get returns the symbology definition for a format name.
// Returns an error wrapping ErrUnknownFormat if nothing is registered
// under that name.
func Get(key string) (Definition, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[strings.ToLower(key)]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownFormat, key)
	}
	return def, nil
}

// All returns all registered definitions, sorted by key.
func All() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Definition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// Count returns the number of registered symbologies.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered symbologies.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Definition)
}
