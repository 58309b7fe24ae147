package token

import (
	"strings"
	"unicode"
)

// Kind is the implicit type of a plain scalar under the core schema.
type Kind int

const (
	KindString Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Resolve classifies the text of a plain (unquoted) scalar per the
// core schema. Quoted and block scalars are always strings and must
// not be passed here. The same classification drives both parsing
// (which Node variant to build) and encoding (whether a string needs
// quotes to survive re-parsing).
func Resolve(v string) Kind {
	switch v {
	case "", "~", "null", "Null", "NULL":
		return KindNull
	case "true", "True", "TRUE", "false", "False", "FALSE":
		return KindBool
	case ".nan", ".NaN", ".NAN":
		return KindFloat
	case ".inf", ".Inf", ".INF",
		"+.inf", "+.Inf", "+.INF",
		"-.inf", "-.Inf", "-.INF":
		return KindFloat
	}
	d := []byte(v)
	if d[0] == '+' || d[0] == '-' {
		d = d[1:]
	}
	if len(d) == 0 {
		return KindString
	}
	if isIntText(d) {
		return KindInt
	}
	if isFloatText(d) {
		return KindFloat
	}
	return KindString
}

// isIntText matches digits, 0x hex, or 0o octal (no sign).
func isIntText(d []byte) bool {
	if len(d) > 2 && d[0] == '0' {
		switch d[1] {
		case 'x':
			return hexDigits(d[2:]) == len(d)-2
		case 'o':
			return octDigits(d[2:]) == len(d)-2
		}
	}
	return asciiDigits(d) == len(d)
}

// isFloatText matches [digits][.digits][(e|E)[+|-]digits] with at
// least one digit somewhere and at least one of fraction/exponent.
// When digits precede the dot the fraction may be empty: "5." is a
// float in the core schema.
func isFloatText(d []byte) bool {
	digits := asciiDigits(d)
	f := fract(d[digits:])
	if digits > 0 && f == 0 && digits < len(d) && d[digits] == '.' {
		f = 1
	}
	e := exp(d[digits+f:])
	if digits+f+e != len(d) {
		return false
	}
	if digits == 0 && f < 2 {
		return false
	}
	return f+e > 0
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func hexDigits(d []byte) int {
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case asciiDigit(c):
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return i
		}
		i++
	}
	return i
}

func octDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if d[i] < '0' || d[i] > '7' {
			return i
		}
		i++
	}
	return i
}

// fract returns the length of a .digits fraction, 0 if absent. A lone
// dot does not count unless followed by a digit.
func fract(d []byte) int {
	if len(d) < 2 || d[0] != '.' {
		return 0
	}
	n := asciiDigits(d[1:])
	if n == 0 {
		return 0
	}
	return n + 1
}

func exp(d []byte) int {
	if len(d) < 2 {
		return 0
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0
	}
	i := 1
	switch d[1] {
	case '+', '-':
		i++
	}
	n := asciiDigits(d[i:])
	if n == 0 || i+n != len(d) {
		return 0
	}
	return i + n
}

// NeedsQuote reports whether v cannot be emitted as a plain scalar:
// either Resolve would misread it as null/bool/number, or its shape
// collides with YAML syntax.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	if Resolve(v) != KindString {
		return true
	}
	if v != strings.TrimSpace(v) {
		return true
	}
	if v == "---" || v == "..." ||
		strings.HasPrefix(v, "--- ") || strings.HasPrefix(v, "... ") {
		return true
	}
	switch v[0] {
	case '-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*', '!',
		'|', '>', '\'', '"', '%', '@', '`':
		// leading indicators are safe only when the scalar is quoted
		if len(v) == 1 {
			return true
		}
		if v[0] == '-' || v[0] == '?' || v[0] == ':' {
			if v[1] == ' ' || v[1] == '\t' {
				return true
			}
		} else {
			return true
		}
	}
	for i, r := range v {
		if r == '\n' || r == '\t' || unicode.IsControl(r) {
			return true
		}
		switch r {
		case ':':
			if i == len(v)-1 || v[i+1] == ' ' {
				return true
			}
		case '#':
			if i > 0 && v[i-1] == ' ' {
				return true
			}
		case '[', ']', '{', '}', ',':
			// plain scalars containing flow indicators re-parse fine in
			// block context but not in flow; quote for both
			return true
		}
	}
	return false
}
