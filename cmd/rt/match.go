package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Match.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: match requires one argument, a pattern", cli.ErrUsage)
	}
	s, err := cfg.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	matches, total := s.Match(nil, args[0], cfg.Limit)
	matches, err = whereFilter(s, cfg.Where, matches)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Fprintln(cc.Out, m)
	}
	if cfg.Limit >= 0 && total > cfg.Limit {
		fmt.Fprintf(cc.Out, "# showing %d of %d matches\n", cfg.Limit, total)
	}
	return nil
}
