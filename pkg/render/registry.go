package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-onboarding/pkg/steps"
)

// Registry stores step renderers by step type.
type Registry struct {
	mu        sync.RWMutex
	renderers map[steps.Type]StepRenderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[steps.Type]StepRenderer),
	}
}

// Register adds a renderer under its Type(). Unknown types and duplicates
// return an error.
func (r *Registry) Register(renderer StepRenderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	typ := renderer.Type()
	if !steps.Known(typ) {
		return fmt.Errorf("render: cannot register renderer for unknown step type %q", typ)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[typ]; exists {
		return fmt.Errorf("render: renderer for %q already registered", typ)
	}

	r.renderers[typ] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderers ...StepRenderer) {
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			panic(err)
		}
	}
}

// Get retrieves the renderer for a step type.
func (r *Registry) Get(typ steps.Type) (StepRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[typ]
	if !ok {
		return nil, fmt.Errorf("render: no renderer registered for %q", typ)
	}
	return renderer, nil
}

// List returns the registered step types in sorted order.
func (r *Registry) List() []steps.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]steps.Type, 0, len(r.renderers))
	for typ := range r.renderers {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Has reports whether a renderer is registered for typ.
func (r *Registry) Has(typ steps.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[typ]
	return ok
}

// Missing returns the known step types without a renderer.
func (r *Registry) Missing() []steps.Type {
	var out []steps.Type
	for _, typ := range steps.Types() {
		if !r.Has(typ) {
			out = append(out, typ)
		}
	}
	return out
}
