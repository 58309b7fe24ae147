package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"

	"github.com/signadot/yaml-format/go-yaml/debug"
	"github.com/signadot/yaml-format/go-yaml/ir"
)

// Env is the variable environment for an expression.
type Env map[string]any

// Eval runs an expr-lang expression against a document and returns the
// result as a node. The whole document is bound to "doc"; when the
// document is a mapping its string keys are also bound directly, so
// "spec.replicas" works without the doc prefix.
func Eval(doc *ir.Node, src string) (*ir.Node, error) {
	env := Env{"doc": ToAny(doc)}
	if doc.Type == ir.MappingType {
		for i := range doc.Fields {
			key := doc.Fields[i]
			if key.Type != ir.StringType || key.String == "doc" {
				continue
			}
			env[key.String] = ToAny(doc.Values[i])
		}
	}
	res, err := Run(src, env)
	if err != nil {
		return nil, err
	}
	return FromAny(res)
}

// Run compiles and evaluates an expression against an environment.
func Run(src string, env Env) (any, error) {
	prg, err := expr.Compile(src, exprOpts(env)...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", src, err)
	}
	res, err := expr.Run(prg, map[string]any(env))
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", src, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", src, res)
	}
	return res, nil
}

func exprOpts(env Env) []expr.Option {
	return []expr.Option{
		expr.Env(map[string]any(env)),
		expr.AllowUndefinedVariables(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
