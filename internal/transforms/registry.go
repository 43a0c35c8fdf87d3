// Package transforms provides a dependency-ordered registry of named
// transformers that run over a source.Result.
package transforms

import (
	"fmt"
	"sort"
	"sync"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
)

// Registry holds transformers by unique name.
type Registry struct {
	mu    sync.RWMutex
	items map[string]Transformer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Transformer)}
}

// Register adds a transformer. Names must be unique and stages valid.
func (r *Registry) Register(t Transformer) error {
	if t == nil {
		return fmt.Errorf("cannot register nil transformer")
	}
	if t.Name() == "" {
		return fmt.Errorf("transformer name must not be empty")
	}
	if !IsValidStage(t.Stage()) {
		return fmt.Errorf("transformer %q has invalid stage: %q", t.Name(), t.Stage())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[t.Name()]; exists {
		return fmt.Errorf("transformer %q already registered", t.Name())
	}
	r.items[t.Name()] = t
	return nil
}

// MustRegister is Register for package-level setup; it panics on error.
func (r *Registry) MustRegister(t Transformer) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get looks a transformer up by name.
func (r *Registry) Get(name string) (Transformer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.items[name]
	return t, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// all returns the registered transformers in name order.
func (r *Registry) all() []Transformer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Transformer, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// List returns every registered transformer in execution order.
func (r *Registry) List() ([]Transformer, error) {
	return BuildPipeline(r.all())
}

// Default returns a registry populated with the built-in transformers.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(Titles())
	r.MustRegister(Slugs())
	r.MustRegister(Fingerprint())
	r.MustRegister(PageTree())
	r.MustRegister(SortPages())
	return r
}

// Select builds the execution order for a subset of the registry. An empty
// include list selects everything. Each included transformer pulls in its
// MustRunAfter dependencies transitively; disabled names are removed last and
// it is an error for a remaining transformer to depend on one of them.
func Select(r *Registry, include, disabled []string) ([]Transformer, error) {
	selected := make(map[string]Transformer)

	if len(include) == 0 {
		for _, t := range r.all() {
			selected[t.Name()] = t
		}
	} else {
		pending := append([]string(nil), include...)
		for len(pending) > 0 {
			name := pending[0]
			pending = pending[1:]
			if _, done := selected[name]; done {
				continue
			}
			t, ok := r.Get(name)
			if !ok {
				return nil, derrors.ValidationFailed("pipeline.transformers", fmt.Sprintf("unknown transformer %q", name)).
					WithContext("transformer", name)
			}
			selected[name] = t
			pending = append(pending, t.Dependencies().MustRunAfter...)
		}
	}

	for _, name := range disabled {
		if _, ok := r.Get(name); !ok {
			return nil, derrors.ValidationFailed("pipeline.disabled", fmt.Sprintf("unknown transformer %q", name)).
				WithContext("transformer", name)
		}
		delete(selected, name)
	}

	out := make([]Transformer, 0, len(selected))
	for _, t := range selected {
		for _, dep := range t.Dependencies().MustRunAfter {
			if _, ok := selected[dep]; !ok {
				return nil, derrors.ValidationFailed("pipeline.disabled",
					fmt.Sprintf("transformer %q depends on disabled transformer %q", t.Name(), dep)).
					WithContext("transformer", t.Name())
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })

	ordered, err := BuildPipeline(out)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryValidation, derrors.SeverityFatal, "cannot order transformer pipeline")
	}
	return ordered, nil
}
