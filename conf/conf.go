// Package conf loads the YAML file naming a store's provider set.
package conf

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/regtree/regtree/provider"
	"github.com/regtree/regtree/provider/dotenv"
	"github.com/regtree/regtree/provider/sqlite"
	"github.com/regtree/regtree/provider/yamlfile"
)

// ProviderConfig describes one provider. Name defaults to the file
// when empty; prefix must be an absolute registry path.
type ProviderConfig struct {
	Kind   provider.Kind `yaml:"kind"`
	Name   string        `yaml:"name,omitempty"`
	File   string        `yaml:"file"`
	Prefix string        `yaml:"prefix"`
}

type Config struct {
	Providers []ProviderConfig `yaml:"providers"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Registry builds the provider registry in file order, so load and
// save run in the order the config lists them.
func (c *Config) Registry() (*provider.Registry, error) {
	r := provider.NewRegistry()
	for i, pc := range c.Providers {
		p, err := pc.provider()
		if err != nil {
			return nil, fmt.Errorf("provider %d: %w", i, err)
		}
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (pc *ProviderConfig) provider() (provider.Provider, error) {
	name := pc.Name
	if name == "" {
		name = pc.File
	}
	switch pc.Kind {
	case provider.YAMLKind:
		return yamlfile.New(name, pc.File, pc.Prefix), nil
	case provider.DotenvKind:
		return dotenv.New(name, pc.File, pc.Prefix), nil
	case provider.SQLiteKind:
		return sqlite.New(name, pc.File, pc.Prefix), nil
	default:
		return nil, fmt.Errorf("%w: %d", provider.ErrBadKind, pc.Kind)
	}
}
