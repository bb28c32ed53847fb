package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	s, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	v, found := s.Get(args[0])
	if !found {
		return fmt.Errorf("%s: no value", args[0])
	}
	fmt.Fprintln(cc.Out, v)
	return nil
}
