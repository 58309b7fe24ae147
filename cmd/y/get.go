package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	yaml "github.com/signadot/yaml-format/go-yaml"
	"github.com/signadot/yaml-format/go-yaml/encode"
	"github.com/signadot/yaml-format/go-yaml/eval"
)

func yGet(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires an expression argument", cli.ErrUsage)
	}
	src := args[0]
	for _, arg := range argsOrStdin(args[1:]) {
		in, err := readArg(arg)
		if err != nil {
			return err
		}
		docs, err := yaml.ParseAll(in)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", arg, err)
		}
		for i, doc := range docs {
			res, err := eval.Eval(doc, src)
			if err != nil {
				return fmt.Errorf("evaluating %q on %s: %w", src, arg, err)
			}
			if i > 0 {
				fmt.Fprintln(cc.Out, "---")
			}
			if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
				return err
			}
		}
	}
	return nil
}
