package yamlfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"

	"github.com/regtree/regtree/tree"
)

func TestProvider_Load(t *testing.T) {
	file := filepath.Join(t.TempDir(), "main.yaml")
	doc := `addr: 127.0.0.1
ports:
  - "80"
  - "443"
tls:
  cert: /etc/ssl/cert.pem
empty:
`
	if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New("main", file, "/files/main")
	tr := tree.New()
	if err := p.Init(tr); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := p.Load(tr); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{path: "/files/main/addr", want: "127.0.0.1"},
		{path: "/files/main/ports/1", want: "80"},
		{path: "/files/main/ports/2", want: "443"},
		{path: "/files/main/tls/cert", want: "/etc/ssl/cert.pem"},
		{path: "/files/main/empty", want: ""},
	}
	for _, tt := range tests {
		got, ok := tr.Get(tt.path)
		if !ok || got != tt.want {
			t.Errorf("Get(%q) = (%q, %v), want (%q, true)", tt.path, got, ok, tt.want)
		}
	}

	// The prefix chain materializes valueless, keys keep document order.
	if !tr.Exists("/files") {
		t.Error("prefix ancestor /files missing")
	}
	if _, ok := tr.Get("/files/main"); ok {
		t.Error("prefix node has a value")
	}
	children := tr.Ls(nil, "/files/main")
	want := []string{"/files/main/addr", "/files/main/ports", "/files/main/tls", "/files/main/empty"}
	if diff := cmp.Diff(want, children); diff != "" {
		t.Errorf("document order lost (-want +got):\n%s", diff)
	}
}

func TestProvider_MissingFileLoadsEmpty(t *testing.T) {
	p := New("main", filepath.Join(t.TempDir(), "absent.yaml"), "/files/main")
	tr := tree.New()
	if err := p.Init(tr); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := p.Load(tr); err != nil {
		t.Fatalf("Load on a missing file: %v", err)
	}
	if tr.Len() != 2 {
		t.Errorf("missing file grew the store to %d nodes", tr.Len())
	}
}

func TestProvider_SaveRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.yaml")
	p := New("out", file, "/files/out")

	tr := tree.New()
	tr.Set("/files/out/addr", "0.0.0.0")
	tr.Set("/files/out/ports/1", "8080")
	tr.Set("/files/out/ports/2", "8443")
	tr.Set("/files/out/tls/cert", "cert.pem")

	if err := p.Init(tr); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := p.Save(tr); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved file does not parse: %v", err)
	}
	want := map[string]any{
		"addr":  "0.0.0.0",
		"ports": []any{"8080", "8443"},
		"tls":   map[string]any{"cert": "cert.pem"},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("saved document (-want +got):\n%s", diff)
	}

	// Loading what was saved reproduces the subtree.
	tr2 := tree.New()
	if err := p.Load(tr2); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, _ := tr2.Get("/files/out/ports/2")
	if got != "8443" {
		t.Errorf("reload Get(ports/2) = %q, want 8443", got)
	}
}

func TestProvider_NumbersNormalizeToStrings(t *testing.T) {
	file := filepath.Join(t.TempDir(), "n.yaml")
	if err := os.WriteFile(file, []byte("port: 80\nenabled: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := New("n", file, "/files/n")
	tr := tree.New()
	if err := p.Load(tr); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, _ := tr.Get("/files/n/port"); got != "80" {
		t.Errorf("port = %q, want %q", got, "80")
	}
	if got, _ := tr.Get("/files/n/enabled"); got != "true" {
		t.Errorf("enabled = %q, want %q", got, "true")
	}
}

func TestProvider_InitRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		prefix string
	}{
		{name: "no file", file: "", prefix: "/files/x"},
		{name: "relative prefix", file: "x.yaml", prefix: "files/x"},
		{name: "empty prefix", file: "x.yaml", prefix: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := New("x", tt.file, tt.prefix).Init(tree.New()); err == nil {
				t.Error("Init accepted a bad configuration")
			}
		})
	}
}
