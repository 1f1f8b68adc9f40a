// Package source holds the provider registry. Website connectors register
// themselves at startup and are looked up by ID when a request comes in.
package source

import (
	"fmt"
	"sort"

	"github.com/ryogami/kiryuu-go/internal/models"
)

var registry = make(map[string]models.Provider)

// Register adds a new provider to the registry. It's called at startup.
func Register(p models.Provider) {
	info := p.GetInfo()
	if _, exists := registry[info.ID]; exists {
		// Panic is appropriate here as it's a developer error during setup.
		panic(fmt.Sprintf("provider with ID '%s' is already registered", info.ID))
	}
	registry[info.ID] = p
}

// Get returns a provider by its ID.
func Get(id string) (models.Provider, bool) {
	p, ok := registry[id]
	return p, ok
}

// GetAll returns information for all registered providers, sorted by ID.
func GetAll() []models.ProviderInfo {
	var providers []models.ProviderInfo
	for _, p := range registry {
		providers = append(providers, p.GetInfo())
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].ID < providers[j].ID })
	return providers
}

// UnregisterAll empties the registry. Used by tests.
func UnregisterAll() {
	registry = make(map[string]models.Provider)
}
