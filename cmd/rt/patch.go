package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a prefix and optionally a file", cli.ErrUsage)
	}
	var data []byte
	if len(args) == 2 && args[1] != "-" {
		data, err = os.ReadFile(args[1])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}
	s, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.MergePatch(args[0], data); err != nil {
		return err
	}
	if cfg.N {
		return nil
	}
	return s.Save()
}
