package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	yaml "github.com/signadot/yaml-format/go-yaml"
	"github.com/signadot/yaml-format/go-yaml/encode"
)

func yPatch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.File == "" {
		return fmt.Errorf("%w: patch requires -f patchfile", cli.ErrUsage)
	}
	patch, err := readArg(cfg.File)
	if err != nil {
		return err
	}
	for _, arg := range argsOrStdin(args) {
		in, err := readArg(arg)
		if err != nil {
			return err
		}
		doc, err := yaml.Parse(in)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", arg, err)
		}
		out, err := yaml.PatchYAML(doc, patch)
		if err != nil {
			return fmt.Errorf("patching %s: %w", arg, err)
		}
		if err := encode.Encode(out, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
