package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func rm(cfg *RmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rm.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: rm requires one argument, a path", cli.ErrUsage)
	}
	s, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	fmt.Fprintln(cc.Out, s.Rm(args[0]))
	if cfg.N {
		return nil
	}
	return s.Save()
}
