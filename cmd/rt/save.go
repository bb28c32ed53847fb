package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/regtree/regtree/provider"
	"github.com/regtree/regtree/textdiff"
)

func save(cfg *SaveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Save.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: save takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	if !cfg.Diff {
		return s.Save()
	}

	colorize := cfg.colorize(cc.Out)
	for _, p := range s.Registry().Providers() {
		fp, ok := p.(provider.FileProvider)
		if !ok {
			fmt.Fprintf(cc.Out, "# %s: no file to diff\n", p.Name())
			continue
		}
		old, err := os.ReadFile(fp.File())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", fp.File(), err)
		}
		data, err := fp.Render(s.Tree())
		if err != nil {
			return fmt.Errorf("render %s: %w", p.Name(), err)
		}
		if string(old) == string(data) {
			continue
		}
		fmt.Fprintf(cc.Out, "--- %s (%s)\n", p.Name(), fp.File())
		diff := textdiff.Strings(string(old), string(data))
		if !colorize {
			fmt.Fprint(cc.Out, diff)
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
			switch {
			case strings.HasPrefix(line, "- "):
				fmt.Fprintln(cc.Out, color.RedString("%s", line))
			case strings.HasPrefix(line, "+ "):
				fmt.Fprintln(cc.Out, color.GreenString("%s", line))
			default:
				fmt.Fprintln(cc.Out, line)
			}
		}
	}
	return nil
}
