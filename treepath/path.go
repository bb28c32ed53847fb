// Package treepath provides the string primitives for absolute,
// slash-separated registry paths.
package treepath

// Sep separates path segments.
const Sep = '/'

// Len returns the length of path ignoring a single trailing separator,
// so "/a/b" and "/a/b/" report the same length.
func Len(path string) int {
	n := len(path)
	if n > 0 && path[n-1] == Sep {
		n--
	}
	return n
}

// Trim returns path without a single trailing separator.
func Trim(path string) string {
	return path[:Len(path)]
}

// HasPrefix reports whether prefix is a hierarchical prefix of path:
// both agree on the first Len(prefix) bytes and path either ends there
// or continues with a separator. HasPrefix(p, p) is true, so equal
// paths prefix each other.
func HasPrefix(prefix, path string) bool {
	n := Len(prefix)
	if len(path) < n || path[:n] != prefix[:n] {
		return false
	}
	return len(path) == n || path[n] == Sep
}
