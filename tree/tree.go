// Package tree implements the ordered path/value store at the core of
// regtree. Nodes live on a circular doubly-linked list in creation
// order; a map index serves exact path lookup. Hierarchy is encoded in
// the path strings only, never in list adjacency: ancestors are
// materialized at the enumeration tail, not next to their descendants.
package tree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danwakefield/fnmatch"

	"github.com/regtree/regtree/debug"
	"github.com/regtree/regtree/treepath"
)

// Two permanent entries seed the ring. They are present in every
// store, SystemPath first, and no operation removes them.
const (
	SystemPath       = "/system"
	SystemConfigPath = "/system/config"
)

// node is one path/value entry on the ring. A nil value means the
// node exists without a value, as materialized ancestors do.
type node struct {
	path  string
	value *string

	prev, next *node
}

// Tree is the store. All enumeration walks the ring from head so that
// creation and insert order stay observable; the index is for exact
// lookup only.
type Tree struct {
	head  *node
	index map[string]*node
}

// New returns a store holding exactly the two permanent entries.
func New() *Tree {
	sys := &node{path: SystemPath}
	cfg := &node{path: SystemConfigPath}
	sys.next, sys.prev = cfg, cfg
	cfg.next, cfg.prev = sys, sys
	return &Tree{
		head: sys,
		index: map[string]*node{
			SystemPath:       sys,
			SystemConfigPath: cfg,
		},
	}
}

// find is an exact-path lookup, tolerant of one trailing separator.
func (t *Tree) find(path string) *node {
	return t.index[treepath.Trim(path)]
}

// linkBefore links n into the ring immediately before at.
func (t *Tree) linkBefore(n, at *node) {
	n.next = at
	n.prev = at.prev
	n.next.prev = n
	n.prev.next = n
	t.index[n.path] = n
}

func (t *Tree) unlink(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
	delete(t.index, n.path)
}

// make creates the node for path, linked before at, after creating any
// missing ancestors. Ancestors always go to the enumeration tail
// (before head), left to right along the path. The caller ensures path
// is not already present.
func (t *Tree) make(path string, at *node) *node {
	path = treepath.Trim(path)
	for i := 1; i < len(path); i++ {
		if path[i] != treepath.Sep {
			continue
		}
		if prefix := path[:i]; t.index[prefix] == nil {
			t.linkBefore(&node{path: prefix}, t.head)
		}
	}
	n := &node{path: path}
	t.linkBefore(n, at)
	return n
}

// Get returns the value at path. The second return is false when the
// node is absent or carries no value.
func (t *Tree) Get(path string) (string, bool) {
	n := t.find(path)
	if n == nil || n.value == nil {
		return "", false
	}
	return *n.value, true
}

// Set creates or updates the node at path. A new node goes to the
// enumeration tail; an existing node keeps its position and has its
// value replaced.
func (t *Tree) Set(path, value string) {
	n := t.find(path)
	if n == nil {
		n = t.make(path, t.head)
	}
	n.value = &value
}

// Exists reports whether a node at exactly this path is present.
func (t *Tree) Exists(path string) bool {
	return t.find(path) != nil
}

// Insert places path immediately before sibling on the ring. Both
// must name distinct children of the same parent, compared on the raw
// strings, and sibling must exist. An existing path is repositioned
// and keeps its value; an absent one is created without a value, with
// ancestors materialized as in Set. On error the store is unchanged.
func (t *Tree) Insert(path, sibling string) error {
	if path == sibling {
		return fmt.Errorf("%w: %q", ErrSamePath, path)
	}
	pd := strings.LastIndexByte(path, treepath.Sep)
	sd := strings.LastIndexByte(sibling, treepath.Sep)
	if pd < 0 || sd < 0 || pd != sd || path[:pd] != sibling[:sd] {
		return fmt.Errorf("%w: %q and %q", ErrParentMismatch, path, sibling)
	}
	s := t.find(sibling)
	if s == nil {
		return fmt.Errorf("%w: %q", ErrSiblingNotFound, sibling)
	}
	n := t.find(path)
	if n == nil {
		t.make(path, s)
		return nil
	}
	t.unlink(n)
	t.linkBefore(n, s)
	return nil
}

// Rm removes the node at path and every node nested under it, except
// the two permanent entries, and returns the number removed. Each
// node's successor is saved before any unlink so the walk survives
// removing the node it is looking at.
func (t *Tree) Rm(path string) int {
	q := treepath.Trim(path)
	cnt := 0
	for n := t.head.next; n != t.head; {
		next := n.next
		if strings.HasPrefix(n.path, q) &&
			(len(n.path) == len(q) || n.path[len(q)] == treepath.Sep) &&
			n.path != SystemPath && n.path != SystemConfigPath {
			t.unlink(n)
			cnt++
		}
		n = next
	}
	if debug.Tree() {
		debug.Logf("tree: rm %s removed %d\n", path, cnt)
	}
	return cnt
}

// isChild reports whether path is an immediate child of parent, where
// plen is treepath.Len(parent).
func isChild(parent string, plen int, path string) bool {
	return treepath.HasPrefix(parent, path) &&
		len(path) > plen+1 &&
		!strings.ContainsRune(path[plen+1:], treepath.Sep)
}

// Ls appends the paths of the immediate children of path to dst, in
// list order, and returns the extended slice.
func (t *Tree) Ls(dst []string, path string) []string {
	l := treepath.Len(path)
	n := t.head
	for {
		if isChild(path, l, n.path) {
			dst = append(dst, n.path)
		}
		n = n.next
		if n == t.head {
			return dst
		}
	}
}

// NumLs returns the number of immediate children of path without
// collecting them.
func (t *Tree) NumLs(path string) int {
	l := treepath.Len(path)
	cnt := 0
	n := t.head
	for {
		if isChild(path, l, n.path) {
			cnt++
		}
		n = n.next
		if n == t.head {
			return cnt
		}
	}
}

// Match appends the paths matching the shell glob pattern to dst, at
// most limit of them (limit < 0 lifts the cap), and returns the
// extended slice along with the total number of matches on the ring.
// A total above limit tells the caller the result was truncated.
// Patterns follow fnmatch: `*` and `?` cross separators, `[...]`
// classes work, backslash is an ordinary character.
func (t *Tree) Match(dst []string, pattern string, limit int) ([]string, int) {
	total := 0
	start := len(dst)
	n := t.head
	for {
		if fnmatch.Match(pattern, n.path, fnmatch.FNM_NOESCAPE) {
			if limit < 0 || len(dst)-start < limit {
				dst = append(dst, n.path)
			}
			total++
		}
		n = n.next
		if n == t.head {
			return dst, total
		}
	}
}

// Print writes every node whose path begins with prefix, byte for
// byte with no boundary test, to w in list order, one "path = value"
// or bare "path" line each. The empty prefix selects everything.
// Link symmetry is verified on every node along the way; violations
// go to the debug log and do not stop the dump.
func (t *Tree) Print(w io.Writer, prefix string) {
	q := treepath.Trim(prefix)
	n := t.head
	for {
		if n.prev.next != n {
			debug.Logf("tree: bad prev link at %s\n", n.path)
		}
		if n.next.prev != n {
			debug.Logf("tree: bad next link at %s\n", n.path)
		}
		if strings.HasPrefix(n.path, q) {
			if n.value != nil {
				fmt.Fprintf(w, "%s = %s\n", n.path, *n.value)
			} else {
				fmt.Fprintln(w, n.path)
			}
		}
		n = n.next
		if n == t.head {
			return
		}
	}
}

// Check validates ring integrity: every node's neighbors must point
// back at it, and following next from head must return to head after
// exactly as many steps as there are nodes. The result joins one
// error per violation and is nil for a sound ring. Nothing is
// repaired.
func (t *Tree) Check() error {
	var errs []error
	n := t.head
	for i := 0; ; i++ {
		if i > len(t.index) {
			errs = append(errs, errors.New("ring does not close at head"))
			break
		}
		if n.prev.next != n {
			errs = append(errs, fmt.Errorf("bad prev link at %q", n.path))
		}
		if n.next.prev != n {
			errs = append(errs, fmt.Errorf("bad next link at %q", n.path))
		}
		n = n.next
		if n == t.head {
			break
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of nodes in the store.
func (t *Tree) Len() int {
	return len(t.index)
}
