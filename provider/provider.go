// Package provider defines the collaborators that move data between
// external formats and the registry tree, and the ordered registry
// that drives them.
package provider

import (
	"errors"
	"fmt"
	"sync"

	"github.com/regtree/regtree/debug"
	"github.com/regtree/regtree/tree"
)

// Provider translates between tree nodes under some prefix and one
// external storage format. Init prepares the backing resource, Load
// parses it into the store, Save serializes the store back out.
// Providers create nodes through the store's own operations, so
// ancestors materialize as usual.
type Provider interface {
	Name() string
	Init(t *tree.Tree) error
	Load(t *tree.Tree) error
	Save(t *tree.Tree) error
}

// FileProvider is a Provider backed by a single file whose serialized
// form can be produced without writing it. Render feeds both Save and
// diff previews.
type FileProvider interface {
	Provider
	File() string
	Render(t *tree.Tree) ([]byte, error)
}

var ErrProviderExists = errors.New("provider exists")

// Registry holds providers in registration order. Init and Save run
// in that order and stop at the first failure, leaving whatever
// earlier providers already did in place.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Provider
	order  []Provider
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Provider{}}
}

func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, present := r.byName[p.Name()]; present {
		return fmt.Errorf("%s: %w", p.Name(), ErrProviderExists)
	}
	r.byName[p.Name()] = p
	r.order = append(r.order, p)
	return nil
}

func (r *Registry) Lookup(name string) Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]Provider, len(r.order))
	copy(res, r.order)
	return res
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.order))
	for _, p := range r.order {
		res = append(res, p.Name())
	}
	return res
}

// Init runs every provider's Init then Load against t, in
// registration order, stopping at the first error.
func (r *Registry) Init(t *tree.Tree) error {
	for _, p := range r.Providers() {
		if err := p.Init(t); err != nil {
			return fmt.Errorf("provider %s: init: %w", p.Name(), err)
		}
		if err := p.Load(t); err != nil {
			return fmt.Errorf("provider %s: load: %w", p.Name(), err)
		}
		if debug.Provider() {
			debug.Logf("provider: %s loaded\n", p.Name())
		}
	}
	return nil
}

// Save runs every provider's Save in registration order, stopping at
// the first error.
func (r *Registry) Save(t *tree.Tree) error {
	for _, p := range r.Providers() {
		if err := p.Save(t); err != nil {
			return fmt.Errorf("provider %s: save: %w", p.Name(), err)
		}
	}
	return nil
}
