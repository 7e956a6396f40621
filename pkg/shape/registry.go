package shape

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/chazu/sdfcore/pkg/config"
)

// Factory builds a shape from its parsed configuration.
type Factory func(cfg *config.Config) (Shape, error)

// Host receives the shape it should render. The host owns the shape
// from then on.
type Host interface {
	SetRoot(s Shape)
}

// entry is a registered factory and the schema its configuration uses.
type entry struct {
	schema  *config.Schema
	factory Factory
}

// Registry maps shape names to factories. It belongs to whoever creates
// it; the package keeps no registry of its own.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a named factory. Registering a name twice is an error.
func (r *Registry) Register(name string, schema *config.Schema, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("shape: %q already registered", name)
	}
	r.entries[name] = entry{schema: schema, factory: f}
	return nil
}

// Schema returns the configuration schema of a registered shape.
func (r *Registry) Schema(name string) (*config.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("shape: %q not registered", name)
	}
	return e.schema, nil
}

// Build parses cfgText against the shape's schema and constructs a new
// instance. An empty cfgText builds the defaults.
func (r *Registry) Build(name, cfgText string) (Shape, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("shape: %q not registered", name)
	}

	cfg, err := config.Parse(strings.NewReader(cfgText), e.schema)
	if err != nil {
		return nil, fmt.Errorf("shape: %s: %w", name, err)
	}
	s, err := e.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("shape: %s: %w", name, err)
	}
	return s, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Install builds the named shape and hands it to h as the root surface.
func (r *Registry) Install(h Host, name, cfgText string) error {
	s, err := r.Build(name, cfgText)
	if err != nil {
		return err
	}
	log.Printf("shape: installing %s as root surface", name)
	h.SetRoot(s)
	return nil
}
