package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func ins(cfg *InsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Ins.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: ins requires a path and a sibling", cli.ErrUsage)
	}
	s, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Insert(args[0], args[1]); err != nil {
		return err
	}
	if cfg.N {
		return nil
	}
	return s.Save()
}
