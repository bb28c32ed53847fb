package provider

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/regtree/regtree/tree"
)

type fakeProvider struct {
	name string
	fail string
	log  *[]string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) step(phase string) error {
	*f.log = append(*f.log, f.name+":"+phase)
	if f.fail == phase {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeProvider) Init(*tree.Tree) error { return f.step("init") }
func (f *fakeProvider) Load(*tree.Tree) error { return f.step("load") }
func (f *fakeProvider) Save(*tree.Tree) error { return f.step("save") }

func TestRegistry_Order(t *testing.T) {
	var log []string
	r := NewRegistry()
	for _, name := range []string{"a", "b"} {
		if err := r.Register(&fakeProvider{name: name, log: &log}); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	tr := tree.New()
	if err := r.Init(tr); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := r.Save(tr); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := []string{"a:init", "a:load", "b:init", "b:load", "a:save", "b:save"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("phase order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, r.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_FailFast(t *testing.T) {
	tests := []struct {
		name string
		fail string
		want []string
	}{
		{
			name: "init failure stops before load",
			fail: "init",
			want: []string{"a:init", "a:load", "b:init"},
		},
		{
			name: "load failure stops the rest",
			fail: "load",
			want: []string{"a:init", "a:load", "b:init", "b:load"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			r := NewRegistry()
			r.Register(&fakeProvider{name: "a", log: &log})
			r.Register(&fakeProvider{name: "b", fail: tt.fail, log: &log})
			r.Register(&fakeProvider{name: "c", log: &log})

			if err := r.Init(tree.New()); err == nil {
				t.Fatal("Init did not fail")
			}
			if diff := cmp.Diff(tt.want, log); diff != "" {
				t.Errorf("phases (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegistry_SaveFailFast(t *testing.T) {
	var log []string
	r := NewRegistry()
	r.Register(&fakeProvider{name: "a", fail: "save", log: &log})
	r.Register(&fakeProvider{name: "b", log: &log})

	if err := r.Save(tree.New()); err == nil {
		t.Fatal("Save did not fail")
	}
	if diff := cmp.Diff([]string{"a:save"}, log); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	var log []string
	r := NewRegistry()
	if err := r.Register(&fakeProvider{name: "a", log: &log}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := r.Register(&fakeProvider{name: "a", log: &log})
	if !errors.Is(err, ErrProviderExists) {
		t.Fatalf("Register duplicate = %v, want ErrProviderExists", err)
	}
	if r.Lookup("a") == nil {
		t.Error("original registration lost")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Kind
		wantErr bool
	}{
		{name: "yaml", in: "yaml", want: YAMLKind},
		{name: "yaml short", in: "y", want: YAMLKind},
		{name: "env", in: "env", want: DotenvKind},
		{name: "dotenv", in: "dotenv", want: DotenvKind},
		{name: "sqlite", in: "sqlite", want: SQLiteKind},
		{name: "db", in: "db", want: SQLiteKind},
		{name: "unknown", in: "toml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadKind) {
					t.Fatalf("ParseKind(%q) err = %v, want ErrBadKind", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	for _, k := range []Kind{YAMLKind, DotenvKind, SQLiteKind} {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", k, err)
		}
		var back Kind
		if err := back.UnmarshalText(d); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", d, err)
		}
		if back != k {
			t.Errorf("round trip %v -> %s -> %v", k, d, back)
		}
	}
}
