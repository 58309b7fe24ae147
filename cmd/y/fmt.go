package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	yaml "github.com/signadot/yaml-format/go-yaml"
	"github.com/signadot/yaml-format/go-yaml/encode"
)

func yFmt(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Diff && cfg.Write {
		return fmt.Errorf("%w: -d and -w are mutually exclusive", cli.ErrUsage)
	}
	for _, arg := range argsOrStdin(args) {
		if err := fmtArg(cfg, cc.Out, arg); err != nil {
			return err
		}
	}
	return nil
}

func fmtArg(cfg *FmtConfig, w io.Writer, arg string) error {
	in, err := readArg(arg)
	if err != nil {
		return err
	}
	out, err := format(cfg, in)
	if err != nil {
		return fmt.Errorf("formatting %s: %w", arg, err)
	}
	switch {
	case cfg.Diff:
		d := yaml.DiffText(string(in), out)
		if d == "" {
			return nil
		}
		if arg != "-" {
			fmt.Fprintf(w, "--- %s\n", arg)
		}
		return writeDiff(w, d)
	case cfg.Write:
		if arg == "-" {
			return fmt.Errorf("%w: -w needs file arguments", cli.ErrUsage)
		}
		return os.WriteFile(arg, []byte(out), 0644)
	default:
		_, err := io.WriteString(w, out)
		return err
	}
}

// format reformats a document stream, keeping "---" separators for
// multi-document input.
func format(cfg *FmtConfig, in []byte) (string, error) {
	docs, err := yaml.ParseAll(in)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for i, doc := range docs {
		if i > 0 {
			buf.WriteString("---\n")
		}
		// diffs and -w compare text, so colors stay off here
		var encOpts []encode.EncodeOption
		if cfg.Flow {
			encOpts = append(encOpts, encode.Flow(true))
		}
		if cfg.Indent > 0 {
			encOpts = append(encOpts, encode.Indent(cfg.Indent))
		}
		if err := encode.Encode(doc, &buf, encOpts...); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// writeDiff renders a diff with removed lines red and added lines
// green when the output is a terminal.
func writeDiff(w io.Writer, d string) error {
	colorize := false
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		colorize = true
	}
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	for _, line := range strings.SplitAfter(d, "\n") {
		if line == "" {
			continue
		}
		if colorize {
			switch line[0] {
			case '-':
				line = red(line)
			case '+':
				line = green(line)
			}
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
