package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tree     bool
	Provider bool
	RPC      bool
	Patch    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tree = boolEnv("REGTREE_DEBUG_TREE")
	d.Provider = boolEnv("REGTREE_DEBUG_PROVIDER")
	d.RPC = boolEnv("REGTREE_DEBUG_RPC")
	d.Patch = boolEnv("REGTREE_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tree() bool {
	return d.Tree
}
func Provider() bool {
	return d.Provider
}
func RPC() bool {
	return d.RPC
}
func Patch() bool {
	return d.Patch
}

// Logf writes directly to stderr, bypassing any flag.
func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
