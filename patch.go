package regtree

import (
	"encoding/json"
	"fmt"
	"sort"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/regtree/regtree/debug"
	"github.com/regtree/regtree/treepath"
)

// MergePatch applies an RFC 7386 merge patch to the subtree at
// prefix. The subtree is rendered to a JSON object (children become
// members, leaf values become strings, a value on an interior node is
// dropped), merged with the patch, and written back: the old subtree
// is removed and the merged document re-materialized with object keys
// in sorted order. A null in the patch deletes, an object nests, a
// scalar sets. The permanent entries survive even when prefix covers
// them.
func (s *Store) MergePatch(prefix string, patch []byte) error {
	prefix = treepath.Trim(prefix)
	doc, err := json.Marshal(s.renderJSON(prefix))
	if err != nil {
		return fmt.Errorf("render %s: %w", prefix, err)
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return fmt.Errorf("merge patch at %s: %w", prefix, err)
	}
	if debug.Patch() {
		debug.Logf("patch: %s: %s + %s -> %s\n", prefix, doc, patch, merged)
	}
	var out any
	if err := json.Unmarshal(merged, &out); err != nil {
		return fmt.Errorf("merged document at %s: %w", prefix, err)
	}
	s.Rm(prefix)
	s.setJSON(prefix, out)
	return nil
}

// renderJSON builds the JSON form of the subtree at path: an object
// of the children when there are any, else the node's value.
func (s *Store) renderJSON(path string) any {
	children := s.Ls(nil, path)
	if len(children) == 0 {
		v, ok := s.Get(path)
		if !ok {
			return map[string]any{}
		}
		return v
	}
	l := treepath.Len(path)
	obj := make(map[string]any, len(children))
	for _, c := range children {
		obj[c[l+1:]] = s.renderJSON(c)
	}
	return obj
}

// setJSON materializes a merged document under path. Object keys go
// in sorted order so the result enumerates deterministically.
func (s *Store) setJSON(path string, v any) {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.setJSON(path+"/"+k, x[k])
		}
	case string:
		s.Set(path, x)
	case nil:
		s.Set(path, "")
	default:
		s.Set(path, fmt.Sprintf("%v", x))
	}
}
