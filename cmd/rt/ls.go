package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func ls(cfg *LsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Ls.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: ls requires one argument, a path", cli.ErrUsage)
	}
	s, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	children, err := whereFilter(s, cfg.Where, s.Ls(nil, args[0]))
	if err != nil {
		return err
	}
	for _, c := range children {
		fmt.Fprintln(cc.Out, c)
	}
	return nil
}
