// Package yamlfile maps a YAML document onto a registry subtree.
// Mapping keys become path segments in document order, sequence
// elements become 1-based numbered segments, scalars become values.
package yamlfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/regtree/regtree/provider"
	"github.com/regtree/regtree/tree"
	"github.com/regtree/regtree/treepath"
)

type Provider struct {
	name   string
	file   string
	prefix string
}

var _ provider.FileProvider = (*Provider)(nil)

func New(name, file, prefix string) *Provider {
	return &Provider{name: name, file: file, prefix: treepath.Trim(prefix)}
}

func (p *Provider) Name() string { return p.name }
func (p *Provider) File() string { return p.file }

// Init validates the configuration. The backing file does not have to
// exist yet; a first Save will create it.
func (p *Provider) Init(*tree.Tree) error {
	if p.file == "" {
		return errors.New("no file")
	}
	if p.prefix == "" || p.prefix[0] != treepath.Sep {
		return fmt.Errorf("prefix %q is not absolute", p.prefix)
	}
	return nil
}

func (p *Provider) Load(t *tree.Tree) error {
	data, err := os.ReadFile(p.file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", p.file, err)
	}
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return fmt.Errorf("parse %s: %w", p.file, err)
	}
	if doc == nil {
		return nil
	}
	p.load(t, p.prefix, doc)
	return nil
}

func (p *Provider) load(t *tree.Tree, path string, v any) {
	switch x := v.(type) {
	case yaml.MapSlice:
		for _, item := range x {
			p.load(t, path+"/"+fmt.Sprintf("%v", item.Key), item.Value)
		}
	case []any:
		// Sequences become numbered children, counting from 1.
		for i, el := range x {
			p.load(t, path+"/"+strconv.Itoa(i+1), el)
		}
	case nil:
		t.Set(path, "")
	default:
		t.Set(path, fmt.Sprintf("%v", x))
	}
}

// Render serializes the subtree under the prefix. Interior nodes
// become mappings or, when their children are exactly 1..n in list
// order, sequences; a value carried by an interior node is dropped.
func (p *Provider) Render(t *tree.Tree) ([]byte, error) {
	if t.NumLs(p.prefix) == 0 {
		if v, ok := t.Get(p.prefix); ok {
			return yaml.Marshal(v)
		}
		return nil, nil
	}
	return yaml.Marshal(p.render(t, p.prefix))
}

func (p *Provider) render(t *tree.Tree, path string) any {
	children := t.Ls(nil, path)
	if len(children) == 0 {
		v, _ := t.Get(path)
		return v
	}
	l := treepath.Len(path)
	seq := true
	for i, c := range children {
		if c[l+1:] != strconv.Itoa(i+1) {
			seq = false
			break
		}
	}
	if seq {
		out := make([]any, 0, len(children))
		for _, c := range children {
			out = append(out, p.render(t, c))
		}
		return out
	}
	out := make(yaml.MapSlice, 0, len(children))
	for _, c := range children {
		out = append(out, yaml.MapItem{Key: c[l+1:], Value: p.render(t, c)})
	}
	return out
}

func (p *Provider) Save(t *tree.Tree) error {
	data, err := p.Render(t)
	if err != nil {
		return fmt.Errorf("render %s: %w", p.file, err)
	}
	return provider.WriteFileAtomic(p.file, data)
}
