// Package dotenv maps a dotenv file onto a registry subtree, one
// KEY=VALUE pair per immediate child of the prefix.
package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/joho/godotenv"

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

func (p *Provider) Init(*tree.Tree) error {
	if p.file == "" {
		return errors.New("no file")
	}
	if p.prefix == "" || p.prefix[0] != treepath.Sep {
		return fmt.Errorf("prefix %q is not absolute", p.prefix)
	}
	return nil
}

// Load reads the env file. Keys go into the store in sorted order so
// repeated loads enumerate the same way.
func (p *Provider) Load(t *tree.Tree) error {
	env, err := godotenv.Read(p.file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", p.file, err)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.Set(p.prefix+"/"+k, env[k])
	}
	return nil
}

// Render serializes the value-bearing immediate children of the
// prefix. Deeper nodes have no dotenv representation and are skipped.
func (p *Provider) Render(t *tree.Tree) ([]byte, error) {
	env := map[string]string{}
	l := treepath.Len(p.prefix)
	for _, c := range t.Ls(nil, p.prefix) {
		if v, ok := t.Get(c); ok {
			env[c[l+1:]] = v
		}
	}
	s, err := godotenv.Marshal(env)
	if err != nil {
		return nil, err
	}
	return []byte(s + "\n"), nil
}

func (p *Provider) Save(t *tree.Tree) error {
	data, err := p.Render(t)
	if err != nil {
		return fmt.Errorf("render %s: %w", p.file, err)
	}
	return provider.WriteFileAtomic(p.file, data)
}
