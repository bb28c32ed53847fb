package conf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/regtree/regtree/provider"
)

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regtree.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConf(t, `
providers:
  - kind: yaml
    name: main
    file: /etc/regtree/main.yaml
    prefix: /files/main
  - kind: env
    file: .env
    prefix: /env
  - kind: sqlite
    file: state.db
    prefix: /state
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Providers) != 3 {
		t.Fatalf("got %d providers, want 3", len(cfg.Providers))
	}
	kinds := []provider.Kind{
		cfg.Providers[0].Kind, cfg.Providers[1].Kind, cfg.Providers[2].Kind,
	}
	want := []provider.Kind{provider.YAMLKind, provider.DotenvKind, provider.SQLiteKind}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_OrderAndNames(t *testing.T) {
	path := writeConf(t, `
providers:
  - kind: env
    name: app
    file: app.env
    prefix: /env/app
  - kind: env
    file: other.env
    prefix: /env/other
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	// Registration order follows file order; the unnamed provider
	// falls back to its file name.
	if diff := cmp.Diff([]string{"app", "other.env"}, reg.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_BadKind(t *testing.T) {
	path := writeConf(t, `
providers:
  - kind: ldap
    file: x
    prefix: /x
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "bad provider kind") {
		t.Errorf("err = %v, want a bad-kind error", err)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	path := writeConf(t, `
providers:
  - kind: env
    name: dup
    file: a.env
    prefix: /a
  - kind: env
    name: dup
    file: b.env
    prefix: /b
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cfg.Registry(); !errors.Is(err, provider.ErrProviderExists) {
		t.Errorf("err = %v, want ErrProviderExists", err)
	}
}
