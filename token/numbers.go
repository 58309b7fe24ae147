package token

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// FormatInt renders an integer with minimal digits: no leading zeros,
// optional leading minus.
func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatFloat renders a float in its shortest form that re-parses to
// the identical bit pattern. Non-finite values use the fixed tokens
// .nan, .inf and -.inf. Integral finite values keep a trailing ".0" so
// they stay floats on re-parse.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	v := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(v, ".eE") {
		v += ".0"
	}
	return v
}

// ParseInt parses an integer literal: optional sign, then decimal
// digits or a 0x/0o prefixed form. Returns strconv.ErrRange (wrapped)
// when the value exceeds int64.
func ParseInt(s string) (int64, error) {
	neg := false
	d := s
	if len(d) > 0 && (d[0] == '+' || d[0] == '-') {
		neg = d[0] == '-'
		d = d[1:]
	}
	base := 10
	if len(d) > 2 && d[0] == '0' {
		switch d[1] {
		case 'x':
			base = 16
			d = d[2:]
		case 'o':
			base = 8
			d = d[2:]
		}
	}
	u, err := strconv.ParseUint(d, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, err
		}
		return 0, ErrNumber
	}
	if neg {
		if u > uint64(math.MaxInt64)+1 {
			return 0, strconv.ErrRange
		}
		return -int64(u), nil
	}
	if u > uint64(math.MaxInt64) {
		return 0, strconv.ErrRange
	}
	return int64(u), nil
}

// ParseFloat parses a float literal including the .nan/.inf tokens.
// Values emitted by FormatFloat parse back bit-exactly.
func ParseFloat(s string) (float64, error) {
	switch s {
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNumber
	}
	return f, nil
}

// ParseNumber parses a scalar already classified as KindInt or
// KindFloat. Integer literals that overflow int64 fall back to the
// float representation rather than failing; that trades exactness for
// accepting the full numeric range people write.
func ParseNumber(s string, kind Kind) (i *int64, f *float64, err error) {
	switch kind {
	case KindInt:
		v, err := ParseInt(s)
		if err == nil {
			return &v, nil, nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return nil, nil, err
		}
		fv, ferr := strconv.ParseFloat(stripIntPrefix(s), 64)
		if ferr != nil {
			return nil, nil, ErrNumber
		}
		return nil, &fv, nil
	case KindFloat:
		v, err := ParseFloat(s)
		if err != nil {
			return nil, nil, err
		}
		return nil, &v, nil
	}
	return nil, nil, ErrNumber
}

// stripIntPrefix rewrites 0x/0o literals to decimal-parsable text for
// the overflow fallback; plain decimals pass through.
func stripIntPrefix(s string) string {
	d := s
	sign := ""
	if len(d) > 0 && (d[0] == '+' || d[0] == '-') {
		sign = d[:1]
		d = d[1:]
	}
	if len(d) > 2 && d[0] == '0' && (d[1] == 'x' || d[1] == 'o') {
		base := 16
		if d[1] == 'o' {
			base = 8
		}
		var acc float64
		for _, c := range []byte(d[2:]) {
			acc = acc*float64(base) + float64(hexVal(c))
		}
		return sign + strconv.FormatFloat(acc, 'g', -1, 64)
	}
	return s
}

func hexVal(c byte) int {
	switch {
	case asciiDigit(c):
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}
