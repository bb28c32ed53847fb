package treepath

import "testing"

func TestLen(t *testing.T) {
	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "plain", path: "/a/b", want: 4},
		{name: "trailing separator", path: "/a/b/", want: 4},
		{name: "root", path: "/", want: 0},
		{name: "empty", path: "", want: 0},
		{name: "only one trailing separator dropped", path: "/a//", want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Len(tt.path); got != tt.want {
				t.Errorf("Len(%q) = %d, want %d", tt.path, got, tt.want)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "plain", path: "/a/b", want: "/a/b"},
		{name: "trailing separator", path: "/a/b/", want: "/a/b"},
		{name: "root", path: "/", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trim(tt.path); got != tt.want {
				t.Errorf("Trim(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestHasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		path   string
		want   bool
	}{
		{name: "child", prefix: "/a", path: "/a/b", want: true},
		{name: "deeper descendant", prefix: "/a", path: "/a/b/c", want: true},
		{name: "self", prefix: "/a", path: "/a", want: true},
		{name: "self with trailing separator", prefix: "/a/", path: "/a", want: true},
		{name: "path with trailing separator", prefix: "/a", path: "/a/", want: true},
		{name: "text prefix is not a path prefix", prefix: "/a", path: "/ab", want: false},
		{name: "reversed", prefix: "/a/b", path: "/a", want: false},
		{name: "root prefixes everything absolute", prefix: "/", path: "/a", want: true},
		{name: "root does not prefix relative", prefix: "/", path: "a", want: false},
		{name: "unrelated", prefix: "/a", path: "/b/a", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPrefix(tt.prefix, tt.path); got != tt.want {
				t.Errorf("HasPrefix(%q, %q) = %v, want %v", tt.prefix, tt.path, got, tt.want)
			}
		})
	}
}
