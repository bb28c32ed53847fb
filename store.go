// Package regtree is a hierarchical path/value registry. A Store
// holds slash-delimited paths with optional string values in a single
// ordered collection and moves data in and out through format
// providers. Two stores are fully independent; nothing here is
// process-global.
package regtree

import (
	"io"

	"github.com/regtree/regtree/provider"
	"github.com/regtree/regtree/tree"
)

// Store combines the path/value tree with an ordered provider set.
type Store struct {
	tree *tree.Tree
	reg  *provider.Registry
}

type Option func(*Store) error

// WithProvider registers one provider. Options run in order, so the
// argument order is the init/load/save order.
func WithProvider(p provider.Provider) Option {
	return func(s *Store) error {
		return s.reg.Register(p)
	}
}

// WithRegistry replaces the store's provider registry wholesale.
func WithRegistry(r *provider.Registry) Option {
	return func(s *Store) error {
		s.reg = r
		return nil
	}
}

// New builds a store seeded with the two permanent entries, applies
// the options, and runs every provider's init and load in
// registration order. The first provider failure aborts the rest and
// is returned; nodes loaded before the failure stay in place.
func New(opts ...Option) (*Store, error) {
	s := &Store{
		tree: tree.New(),
		reg:  provider.NewRegistry(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Init re-runs every provider's init and load, in registration order,
// stopping at the first failure. The permanent entries are never
// re-created; everything else already in the store stays.
func (s *Store) Init() error {
	return s.reg.Init(s.tree)
}

// Save runs every provider's save in registration order, stopping at
// the first failure.
func (s *Store) Save() error {
	return s.reg.Save(s.tree)
}

// Close releases provider resources. Providers that do not implement
// io.Closer have nothing to release.
func (s *Store) Close() error {
	var first error
	for _, p := range s.reg.Providers() {
		c, ok := p.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Tree exposes the underlying store to collaborators such as
// providers. The tree is single-threaded; callers own any locking.
func (s *Store) Tree() *tree.Tree { return s.tree }

// Registry exposes the provider set.
func (s *Store) Registry() *provider.Registry { return s.reg }

func (s *Store) Get(path string) (string, bool) { return s.tree.Get(path) }
func (s *Store) Set(path, value string)         { s.tree.Set(path, value) }
func (s *Store) Exists(path string) bool        { return s.tree.Exists(path) }

func (s *Store) Insert(path, sibling string) error { return s.tree.Insert(path, sibling) }
func (s *Store) Rm(path string) int                { return s.tree.Rm(path) }

func (s *Store) Ls(dst []string, path string) []string { return s.tree.Ls(dst, path) }
func (s *Store) NumLs(path string) int                 { return s.tree.NumLs(path) }

func (s *Store) Match(dst []string, pattern string, limit int) ([]string, int) {
	return s.tree.Match(dst, pattern, limit)
}

func (s *Store) Print(w io.Writer, prefix string) { s.tree.Print(w, prefix) }
func (s *Store) Check() error                     { return s.tree.Check() }
func (s *Store) Len() int                         { return s.tree.Len() }
