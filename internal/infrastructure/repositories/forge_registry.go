package repositories

import (
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/pybump/internal/domain/repositories"
)

// ForgeFactory is a constructor function that creates a ForgeRepository given an auth token.
type ForgeFactory func(token string) domainRepos.ForgeRepository

// ForgeRegistry manages all registered code-hosting implementations.
type ForgeRegistry struct {
	forges map[string]ForgeFactory
}

// NewForgeRegistry creates an empty forge registry.
func NewForgeRegistry() *ForgeRegistry {
	return &ForgeRegistry{
		forges: make(map[string]ForgeFactory),
	}
}

// Register adds a forge factory under the given name (e.g. "github").
func (r *ForgeRegistry) Register(name string, factory ForgeFactory) {
	r.forges[name] = factory
}

// Get returns a configured forge instance for the given name and token.
// An empty token yields an anonymous client.
func (r *ForgeRegistry) Get(name, token string) (domainRepos.ForgeRepository, error) {
	factory, ok := r.forges[name]
	if !ok {
		return nil, fmt.Errorf("unknown forge type: %q", name)
	}
	return factory(token), nil
}

// Names returns the sorted list of registered forge names.
func (r *ForgeRegistry) Names() []string {
	names := make([]string, 0, len(r.forges))
	for name := range r.forges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
