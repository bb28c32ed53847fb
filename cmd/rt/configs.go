package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/regtree/regtree"
	"github.com/regtree/regtree/conf"
)

type MainConfig struct {
	Conf    string `cli:"name=conf desc='provider config file (default $REGTREE_CONF, else regtree.yaml)'"`
	NoColor bool   `cli:"name=no-color desc='disable color output'"`

	Main *cli.Command
}

// confFile resolves the provider config: the -conf flag, then
// $REGTREE_CONF, then regtree.yaml in the working directory. An empty
// result means a store without providers.
func (cfg *MainConfig) confFile() string {
	if cfg.Conf != "" {
		return cfg.Conf
	}
	if v := os.Getenv("REGTREE_CONF"); v != "" {
		return v
	}
	if _, err := os.Stat("regtree.yaml"); err == nil {
		return "regtree.yaml"
	}
	return ""
}

func (cfg *MainConfig) openStore() (*regtree.Store, error) {
	file := cfg.confFile()
	if file == "" {
		return regtree.New()
	}
	c, err := conf.Load(file)
	if err != nil {
		return nil, err
	}
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	return regtree.New(regtree.WithRegistry(reg))
}

func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	N bool `cli:"name=n desc='do not save providers after the change'"`

	Set *cli.Command
}

type RmConfig struct {
	*MainConfig
	N bool `cli:"name=n desc='do not save providers after the change'"`

	Rm *cli.Command
}

type InsConfig struct {
	*MainConfig
	N bool `cli:"name=n desc='do not save providers after the change'"`

	Ins *cli.Command
}

type LsConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='expr predicate over path, value, has'"`

	Ls *cli.Command
}

type MatchConfig struct {
	*MainConfig
	Limit int    `cli:"name=limit desc='cap the number of printed matches'"`
	Where string `cli:"name=where desc='expr predicate over path, value, has'"`

	Match *cli.Command
}

type PrintConfig struct {
	*MainConfig
	Print *cli.Command
}

type SaveConfig struct {
	*MainConfig
	Diff bool `cli:"name=diff desc='preview file changes instead of writing'"`

	Save *cli.Command
}

type PatchConfig struct {
	*MainConfig
	N bool `cli:"name=n desc='do not save providers after the change'"`

	Patch *cli.Command
}

type ServeConfig struct {
	*MainConfig
	Addr string `cli:"name=addr desc='TCP listen address' default=localhost:9300"`

	Serve *cli.Command
}
