// Package textdiff renders line-oriented diffs between two versions
// of a text, for previewing what a provider save would change.
package textdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Strings diffs a against b line by line. Each output line carries a
// marker: "- " for lines only in a, "+ " for lines only in b, "  "
// for common lines. Identical inputs produce only common lines.
func Strings(a, b string) string {
	cfg := diffpatch.New()
	ca, cb, lines := cfg.DiffLinesToChars(a, b)
	diffs := cfg.DiffCharsToLines(cfg.DiffMain(ca, cb, false), lines)

	var bld strings.Builder
	for i := range diffs {
		diff := &diffs[i]
		marker := "  "
		switch diff.Type {
		case diffpatch.DiffDelete:
			marker = "- "
		case diffpatch.DiffInsert:
			marker = "+ "
		}
		for _, ln := range splitLines(diff.Text) {
			bld.WriteString(marker)
			bld.WriteString(ln)
			bld.WriteByte('\n')
		}
	}
	return bld.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
