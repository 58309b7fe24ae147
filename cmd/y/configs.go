package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/signadot/yaml-format/go-yaml/encode"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='force colorized output'"`
	Flow   bool `cli:"name=flow desc='encode in flow style'"`
	Indent int  `cli:"name=i aliases=indent desc='indent width (default 2)'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// encOpts derives encoder options from the shared flags. Color is
// forced by -color and otherwise follows whether w is a terminal.
func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Flow {
		res = append(res, encode.Flow(true))
	}
	if cfg.Indent > 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type FmtConfig struct {
	*MainConfig
	Diff  bool `cli:"name=d desc='show a diff instead of rewriting'"`
	Write bool `cli:"name=w desc='write result back to the file'"`

	Fmt *cli.Command
}

type JSONConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='convert json to yaml'"`

	JSON *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File string `cli:"name=f desc='patch file (RFC 6902, yaml or json)'"`

	Patch *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}
