// Package api defines the JSON-RPC surface of the regtree daemon:
// method names and their parameter and result types. Both the server
// and the typed client build on these so the wire format has exactly
// one definition.
package api

// Method names. Each maps to one store operation.
const (
	MethodGet    = "get"
	MethodSet    = "set"
	MethodExists = "exists"
	MethodInsert = "insert"
	MethodRm     = "rm"
	MethodLs     = "ls"
	MethodMatch  = "match"
	MethodPrint  = "print"
	MethodSave   = "save"
	MethodCheck  = "check"
	MethodStats  = "stats"
)

type GetParams struct {
	Path string `json:"path"`
}

type GetResult struct {
	Value string `json:"value"`
	Found bool   `json:"found"`
}

type SetParams struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

type ExistsParams struct {
	Path string `json:"path"`
}

type ExistsResult struct {
	Exists bool `json:"exists"`
}

type InsertParams struct {
	Path    string `json:"path"`
	Sibling string `json:"sibling"`
}

type RmParams struct {
	Path string `json:"path"`
}

type RmResult struct {
	Removed int `json:"removed"`
}

type LsParams struct {
	Path string `json:"path"`
}

type LsResult struct {
	Children []string `json:"children"`
}

// MatchParams caps the returned matches at Limit; a negative Limit
// lifts the cap.
type MatchParams struct {
	Pattern string `json:"pattern"`
	Limit   int    `json:"limit"`
}

// MatchResult reports the true total even when Matches was truncated
// at the requested limit.
type MatchResult struct {
	Matches []string `json:"matches"`
	Total   int      `json:"total"`
}

type PrintParams struct {
	Prefix string `json:"prefix"`
}

type PrintResult struct {
	Text string `json:"text"`
}

// CheckResult carries the structural self-check outcome. A failed
// check is a normal response, not an RPC error.
type CheckResult struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

type StatsResult struct {
	Nodes     int      `json:"nodes"`
	Providers []string `json:"providers"`
}
