package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Debug logging is gated by Y_DEBUG_* environment variables so it can
// be switched on in the field without rebuilding.
type debug struct {
	Tokens bool
	Parse  bool
	Encode bool
	Eval   bool
	Patch  bool
	Diff   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("Y_DEBUG_TOKENS")
	d.Parse = boolEnv("Y_DEBUG_PARSE")
	d.Encode = boolEnv("Y_DEBUG_ENCODE")
	d.Eval = boolEnv("Y_DEBUG_EVAL")
	d.Patch = boolEnv("Y_DEBUG_PATCH")
	d.Diff = boolEnv("Y_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokens() bool {
	return d.Tokens
}
func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Eval() bool {
	return d.Eval
}
func Patch() bool {
	return d.Patch
}
func Diff() bool {
	return d.Diff
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
