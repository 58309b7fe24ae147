package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CanSingleQuote reports whether v survives single quoting: single
// quotes escape only the quote itself, so the text must contain no
// control characters or newlines.
func CanSingleQuote(v string) bool {
	for _, r := range v {
		if r == '\n' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// QuoteSingle renders a single-quoted scalar; embedded quotes double.
func QuoteSingle(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(v); i++ {
		if v[i] == '\'' {
			b.WriteString("''")
			continue
		}
		b.WriteByte(v[i])
	}
	b.WriteByte('\'')
	return b.String()
}

// QuoteDouble renders a double-quoted scalar with escapes for control
// characters, the quote, and the backslash.
func QuoteDouble(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case 0:
			b.WriteString(`\0`)
		default:
			if unicode.IsControl(r) {
				b.WriteString(escapeRune(r))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

const hexits = "0123456789abcdef"

func escapeRune(r rune) string {
	if r < 0x100 {
		return `\x` + string(hexits[r>>4]) + string(hexits[r&0xf])
	}
	d := []byte{'\\', 'u', 0, 0, 0, 0}
	for i := 0; i < 4; i++ {
		d[5-i] = hexits[r&0xf]
		r >>= 4
	}
	return string(d)
}

// unquoteSingle decodes the interior of a single-quoted scalar.
func unquoteSingle(d []byte) string {
	var b strings.Builder
	b.Grow(len(d))
	for i := 0; i < len(d); i++ {
		if d[i] == '\'' && i+1 < len(d) && d[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// unquoteDouble decodes the interior of a double-quoted scalar. The
// returned offset locates a bad escape when err is non-nil.
func unquoteDouble(d []byte) (string, int, error) {
	var b strings.Builder
	b.Grow(len(d))
	i := 0
	for i < len(d) {
		c := d[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(d) {
			return "", i, ErrEscape
		}
		i++
		switch d[i] {
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'e':
			b.WriteByte(0x1b)
		case 'x':
			r, n, err := hexEscape(d[i+1:], 2)
			if err != nil {
				return "", i, err
			}
			b.WriteRune(r)
			i += n
		case 'u':
			r, n, err := hexEscape(d[i+1:], 4)
			if err != nil {
				return "", i, err
			}
			b.WriteRune(r)
			i += n
		case 'U':
			r, n, err := hexEscape(d[i+1:], 8)
			if err != nil {
				return "", i, err
			}
			b.WriteRune(r)
			i += n
		default:
			return "", i, ErrEscape
		}
		i++
	}
	return b.String(), 0, nil
}

func hexEscape(d []byte, width int) (rune, int, error) {
	if len(d) < width {
		return 0, 0, ErrEscape
	}
	var r rune
	for i := 0; i < width; i++ {
		v := hexVal(d[i])
		if v == 0 && d[i] != '0' {
			return 0, 0, ErrEscape
		}
		if hexDigits(d[i:i+1]) != 1 {
			return 0, 0, ErrEscape
		}
		r = r<<4 | rune(v)
	}
	if !utf8.ValidRune(r) {
		return 0, 0, ErrEscape
	}
	return r, width, nil
}
