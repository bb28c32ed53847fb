package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/regtree/regtree"
)

// whereFilter keeps the paths for which the predicate holds. The
// expression sees path (string), value (string, empty when unset) and
// has (whether a value is set), e.g. `has && value != ""`.
func whereFilter(s *regtree.Store, src string, paths []string) ([]string, error) {
	if src == "" {
		return paths, nil
	}
	program, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("bad -where expression: %w", err)
	}
	res := paths[:0]
	for _, p := range paths {
		v, has := s.Get(p)
		out, err := vm.Run(program, map[string]any{
			"path":  p,
			"value": v,
			"has":   has,
		})
		if err != nil {
			return nil, fmt.Errorf("-where on %s: %w", p, err)
		}
		if keep, ok := out.(bool); ok && keep {
			res = append(res, p)
		}
	}
	return res, nil
}
