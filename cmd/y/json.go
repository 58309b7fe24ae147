package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	yaml "github.com/signadot/yaml-format/go-yaml"
)

func yJSON(cfg *JSONConfig, cc *cli.Context, args []string) error {
	args, err := cfg.JSON.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, arg := range argsOrStdin(args) {
		in, err := readArg(arg)
		if err != nil {
			return err
		}
		var out []byte
		if cfg.Reverse {
			out, err = yaml.FromJSON(in)
		} else {
			out, err = yaml.ToJSON(in)
		}
		if err != nil {
			return fmt.Errorf("converting %s: %w", arg, err)
		}
		if !cfg.Reverse {
			out = append(out, '\n')
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	}
	return nil
}
