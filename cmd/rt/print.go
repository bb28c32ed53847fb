package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func print(cfg *PrintConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Print.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: print takes at most one argument, a prefix", cli.ErrUsage)
	}
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	s, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var b strings.Builder
	s.Print(&b, prefix)
	if !cfg.colorize(cc.Out) {
		fmt.Fprint(cc.Out, b.String())
		return nil
	}
	pathColor := color.New(color.FgCyan).SprintFunc()
	for _, line := range strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n") {
		if line == "" {
			continue
		}
		path, value, found := strings.Cut(line, " = ")
		if found {
			fmt.Fprintf(cc.Out, "%s = %s\n", pathColor(path), value)
		} else {
			fmt.Fprintln(cc.Out, pathColor(path))
		}
	}
	return nil
}
