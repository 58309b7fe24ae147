package token

import (
	"bytes"
)

// Tokenize scans YAML text into a flat token stream. Block structure
// is not resolved here: the scanner records indentation (TIndent) and
// entry markers and leaves nesting to the event layer. Comments are
// consumed and dropped.
func Tokenize(d []byte) ([]Token, error) {
	ts := &tkState{
		d:  d,
		pd: NewPosDoc(d),
	}
	if bytes.HasPrefix(d, []byte{0xef, 0xbb, 0xbf}) {
		ts.i = 3
	}
	if err := ts.run(); err != nil {
		return nil, err
	}
	return ts.toks, nil
}

type tkState struct {
	d    []byte
	i    int
	pd   *PosDoc
	toks []Token
	flow int // depth of open flow collections
}

func (ts *tkState) pos() *Pos {
	return ts.pd.Pos(ts.i)
}

func (ts *tkState) emit(t TokenType, at int, b []byte) {
	ts.toks = append(ts.toks, Token{Type: t, Pos: ts.pd.Pos(at), Bytes: b})
}

func (ts *tkState) run() error {
	atLineStart := true
	for ts.i < len(ts.d) {
		if atLineStart && ts.flow == 0 {
			cont, err := ts.lineStart()
			if err != nil {
				return err
			}
			atLineStart = false
			if !cont {
				atLineStart = true
			}
			continue
		}
		c := ts.d[ts.i]
		switch c {
		case ' ':
			ts.i++
		case '\t':
			ts.i++
		case '\n':
			ts.pd.nl(ts.i)
			ts.i++
			atLineStart = true
		case '#':
			// comments start at a token boundary only
			ts.skipComment()
		case '-':
			if ts.flow == 0 && ts.dashAt(ts.i) {
				ts.emit(TDash, ts.i, ts.d[ts.i:ts.i+1])
				ts.i++
				continue
			}
			if err := ts.scanPlain(); err != nil {
				return err
			}
		case ':':
			if ts.colonAt(ts.i) {
				ts.emit(TColon, ts.i, ts.d[ts.i:ts.i+1])
				ts.i++
				continue
			}
			if err := ts.scanPlain(); err != nil {
				return err
			}
		case '&', '*':
			if err := ts.scanAnchor(c); err != nil {
				return err
			}
		case '!':
			if err := ts.scanTag(); err != nil {
				return err
			}
		case '\'':
			if err := ts.scanSingle(); err != nil {
				return err
			}
		case '"':
			if err := ts.scanDouble(); err != nil {
				return err
			}
		case '|', '>':
			if ts.flow > 0 {
				return NewTokenizeErr(ErrSyntax, ts.pos())
			}
			if err := ts.scanBlockScalar(c); err != nil {
				return err
			}
			atLineStart = true
		case '[':
			ts.emit(TLSquare, ts.i, ts.d[ts.i:ts.i+1])
			ts.flow++
			ts.i++
		case '{':
			ts.emit(TLCurl, ts.i, ts.d[ts.i:ts.i+1])
			ts.flow++
			ts.i++
		case ']':
			if ts.flow == 0 {
				return NewTokenizeErr(ErrSyntax, ts.pos())
			}
			ts.emit(TRSquare, ts.i, ts.d[ts.i:ts.i+1])
			ts.flow--
			ts.i++
		case '}':
			if ts.flow == 0 {
				return NewTokenizeErr(ErrSyntax, ts.pos())
			}
			ts.emit(TRCurl, ts.i, ts.d[ts.i:ts.i+1])
			ts.flow--
			ts.i++
		case ',':
			if ts.flow == 0 {
				return NewTokenizeErr(ErrSyntax, ts.pos())
			}
			ts.emit(TComma, ts.i, ts.d[ts.i:ts.i+1])
			ts.i++
		default:
			if err := ts.scanPlain(); err != nil {
				return err
			}
		}
	}
	return nil
}

// lineStart consumes indentation and line-level constructs. It returns
// false when the whole line was consumed (blank or comment-only).
func (ts *tkState) lineStart() (bool, error) {
	start := ts.i
	for ts.i < len(ts.d) && ts.d[ts.i] == ' ' {
		ts.i++
	}
	if ts.i < len(ts.d) && ts.d[ts.i] == '\t' {
		return false, NewTokenizeErr(ErrTabIndent, ts.pos())
	}
	if ts.i >= len(ts.d) {
		return false, nil
	}
	switch ts.d[ts.i] {
	case '\n':
		ts.pd.nl(ts.i)
		ts.i++
		return false, nil
	case '#':
		ts.skipComment()
		return false, nil
	}
	indent := ts.d[start:ts.i]
	if len(indent) == 0 {
		if tok, n := ts.docMarker(); n > 0 {
			ts.emit(tok, ts.i, ts.d[ts.i:ts.i+3])
			ts.i += 3
			return true, nil
		}
	}
	ts.emit(TIndent, start, indent)
	return true, nil
}

// docMarker recognizes --- and ... at column zero.
func (ts *tkState) docMarker() (TokenType, int) {
	d := ts.d[ts.i:]
	if len(d) < 3 {
		return 0, 0
	}
	var t TokenType
	switch {
	case d[0] == '-' && d[1] == '-' && d[2] == '-':
		t = TDocStart
	case d[0] == '.' && d[1] == '.' && d[2] == '.':
		t = TDocEnd
	default:
		return 0, 0
	}
	if len(d) > 3 && d[3] != ' ' && d[3] != '\t' && d[3] != '\n' {
		return 0, 0
	}
	return t, 3
}

// dashAt reports whether '-' at offset i is a sequence entry marker.
func (ts *tkState) dashAt(i int) bool {
	if i+1 >= len(ts.d) {
		return true
	}
	switch ts.d[i+1] {
	case ' ', '\t', '\n':
		return true
	}
	return false
}

// colonAt reports whether ':' at offset i separates a key from a value.
func (ts *tkState) colonAt(i int) bool {
	if i+1 >= len(ts.d) {
		return true
	}
	switch ts.d[i+1] {
	case ' ', '\t', '\n':
		return true
	case ',', ']', '}':
		return ts.flow > 0
	}
	// {"a":1} style needs no space after quoted keys
	if ts.flow > 0 && i > 0 {
		switch ts.d[i-1] {
		case '"', '\'':
			return true
		}
	}
	return false
}

func (ts *tkState) skipComment() {
	for ts.i < len(ts.d) && ts.d[ts.i] != '\n' {
		ts.i++
	}
}

func (ts *tkState) scanPlain() error {
	start := ts.i
	for ts.i < len(ts.d) {
		c := ts.d[ts.i]
		switch c {
		case '\n':
			goto done
		case ':':
			if ts.colonAt(ts.i) {
				goto done
			}
		case '#':
			if ts.i > start && (ts.d[ts.i-1] == ' ' || ts.d[ts.i-1] == '\t') {
				goto done
			}
		case ',', '[', ']', '{', '}':
			if ts.flow > 0 {
				goto done
			}
		}
		ts.i++
	}
done:
	end := ts.i
	for end > start {
		switch ts.d[end-1] {
		case ' ', '\t', '\r':
			end--
			continue
		}
		break
	}
	if end == start {
		return NewTokenizeErr(ErrSyntax, ts.pd.Pos(start))
	}
	ts.emit(TPlain, start, ts.d[start:end])
	return nil
}

func (ts *tkState) scanAnchor(marker byte) error {
	start := ts.i
	ts.i++
	nameStart := ts.i
	for ts.i < len(ts.d) {
		c := ts.d[ts.i]
		if c == ' ' || c == '\t' || c == '\n' || c == ',' ||
			c == '[' || c == ']' || c == '{' || c == '}' || c == ':' {
			break
		}
		ts.i++
	}
	if ts.i == nameStart {
		return NewTokenizeErr(ErrAnchorName, ts.pd.Pos(start))
	}
	t := TAnchor
	if marker == '*' {
		t = TAlias
	}
	ts.emit(t, start, ts.d[nameStart:ts.i])
	return nil
}

func (ts *tkState) scanTag() error {
	start := ts.i
	ts.i++
	if ts.i < len(ts.d) && ts.d[ts.i] == '<' {
		for ts.i < len(ts.d) && ts.d[ts.i] != '>' && ts.d[ts.i] != '\n' {
			ts.i++
		}
		if ts.i >= len(ts.d) || ts.d[ts.i] != '>' {
			return NewTokenizeErr(ErrSyntax, ts.pd.Pos(start))
		}
		ts.i++
		ts.emit(TTag, start, ts.d[start:ts.i])
		return nil
	}
	for ts.i < len(ts.d) {
		c := ts.d[ts.i]
		if c == ' ' || c == '\t' || c == '\n' || c == ',' ||
			c == '[' || c == ']' || c == '{' || c == '}' {
			break
		}
		ts.i++
	}
	ts.emit(TTag, start, ts.d[start:ts.i])
	return nil
}

func (ts *tkState) scanSingle() error {
	start := ts.i
	ts.i++
	from := ts.i
	for ts.i < len(ts.d) {
		c := ts.d[ts.i]
		if c == '\n' {
			ts.pd.nl(ts.i)
			ts.i++
			continue
		}
		if c != '\'' {
			ts.i++
			continue
		}
		if ts.i+1 < len(ts.d) && ts.d[ts.i+1] == '\'' {
			ts.i += 2
			continue
		}
		raw := ts.d[from:ts.i]
		ts.i++
		ts.emit(TSingle, start, []byte(unquoteSingle(foldQuoted(raw))))
		return nil
	}
	return NewTokenizeErr(ErrUnterminated, ts.pd.Pos(start))
}

func (ts *tkState) scanDouble() error {
	start := ts.i
	ts.i++
	from := ts.i
	for ts.i < len(ts.d) {
		c := ts.d[ts.i]
		switch c {
		case '\n':
			ts.pd.nl(ts.i)
			ts.i++
		case '\\':
			if ts.i+1 < len(ts.d) && ts.d[ts.i+1] == '\n' {
				ts.pd.nl(ts.i + 1)
			}
			ts.i += 2
		case '"':
			raw := ts.d[from:ts.i]
			ts.i++
			s, off, err := unquoteDouble(foldQuoted(raw))
			if err != nil {
				return NewTokenizeErr(err, ts.pd.Pos(from+off))
			}
			ts.emit(TDouble, start, []byte(s))
			return nil
		default:
			ts.i++
		}
	}
	return NewTokenizeErr(ErrUnterminated, ts.pd.Pos(start))
}

// foldQuoted folds line breaks inside quoted scalars: a single break
// with surrounding indentation becomes one space, n+1 breaks become n
// newlines.
func foldQuoted(raw []byte) []byte {
	if !bytes.ContainsRune(raw, '\n') {
		return raw
	}
	lines := bytes.Split(raw, []byte{'\n'})
	res := make([]byte, 0, len(raw))
	breaks := 0
	for i, ln := range lines {
		if i > 0 {
			ln = bytes.TrimLeft(ln, " \t")
		}
		if i < len(lines)-1 {
			ln = bytes.TrimRight(ln, " \t")
		}
		if i == 0 {
			res = append(res, ln...)
			continue
		}
		if len(ln) == 0 && i < len(lines)-1 {
			breaks++
			continue
		}
		if breaks > 0 {
			for j := 0; j < breaks; j++ {
				res = append(res, '\n')
			}
			breaks = 0
		} else {
			res = append(res, ' ')
		}
		res = append(res, ln...)
	}
	return res
}

// scanBlockScalar reads a | or > block and decodes it to its final
// string value; indentation resolution needs the raw lines so it
// cannot be deferred past scanning.
func (ts *tkState) scanBlockScalar(style byte) error {
	start := ts.i
	baseline := ts.lineIndentAt(start)
	ts.i++
	chomp := byte(0)
	explicit := 0
	for ts.i < len(ts.d) {
		c := ts.d[ts.i]
		if c == '+' || c == '-' {
			if chomp != 0 {
				return NewTokenizeErr(ErrSyntax, ts.pos())
			}
			chomp = c
			ts.i++
			continue
		}
		if asciiDigit(c) {
			if explicit != 0 {
				return NewTokenizeErr(ErrSyntax, ts.pos())
			}
			explicit = int(c - '0')
			ts.i++
			continue
		}
		break
	}
	for ts.i < len(ts.d) && (ts.d[ts.i] == ' ' || ts.d[ts.i] == '\t') {
		ts.i++
	}
	if ts.i < len(ts.d) && ts.d[ts.i] == '#' {
		ts.skipComment()
	}
	if ts.i < len(ts.d) {
		if ts.d[ts.i] != '\n' {
			return NewTokenizeErr(ErrSyntax, ts.pos())
		}
		ts.pd.nl(ts.i)
		ts.i++
	}

	contentIndent := -1
	if explicit > 0 {
		contentIndent = baseline + explicit
	}
	var lines [][]byte
	for ts.i < len(ts.d) {
		lnStart := ts.i
		ind := 0
		for ts.i < len(ts.d) && ts.d[ts.i] == ' ' {
			ts.i++
			ind++
		}
		if ts.i >= len(ts.d) {
			if ind > 0 {
				lines = append(lines, []byte{})
			}
			break
		}
		if ts.d[ts.i] == '\n' {
			lines = append(lines, []byte{})
			ts.pd.nl(ts.i)
			ts.i++
			continue
		}
		if contentIndent < 0 {
			if ind <= baseline {
				ts.i = lnStart
				break
			}
			contentIndent = ind
		}
		if ind < contentIndent {
			ts.i = lnStart
			break
		}
		rest := lnStart + contentIndent
		for ts.i < len(ts.d) && ts.d[ts.i] != '\n' {
			ts.i++
		}
		lines = append(lines, ts.d[rest:ts.i])
		if ts.i < len(ts.d) {
			ts.pd.nl(ts.i)
			ts.i++
		}
	}
	// trailing blank lines belong to chomping, not content
	blanks := 0
	for len(lines)-blanks > 0 && len(lines[len(lines)-1-blanks]) == 0 {
		blanks++
	}
	body := lines[:len(lines)-blanks]

	var val []byte
	if style == '|' {
		val = bytes.Join(body, []byte{'\n'})
	} else {
		val = foldLines(body)
	}
	switch chomp {
	case '-':
	case '+':
		if len(body) > 0 {
			for j := 0; j <= blanks; j++ {
				val = append(val, '\n')
			}
		}
	default:
		if len(body) > 0 {
			val = append(val, '\n')
		}
	}
	ts.emit(TLiteral, start, val)
	if style == '>' {
		ts.toks[len(ts.toks)-1].Type = TFolded
	}
	return nil
}

// foldLines implements folded (>) joining: single breaks between
// non-indented lines become spaces, blank lines become newlines, and
// more-indented lines keep their literal breaks.
func foldLines(lines [][]byte) []byte {
	var res []byte
	prevFolded := false
	for i, ln := range lines {
		indented := len(ln) > 0 && (ln[0] == ' ' || ln[0] == '\t')
		if i == 0 {
			res = append(res, ln...)
			prevFolded = len(ln) > 0 && !indented
			continue
		}
		if len(ln) == 0 {
			res = append(res, '\n')
			prevFolded = false
			continue
		}
		if prevFolded && !indented {
			res = append(res, ' ')
		} else if !prevFolded && i > 0 && len(res) > 0 && res[len(res)-1] != '\n' {
			res = append(res, '\n')
		} else if indented && len(res) > 0 && res[len(res)-1] != '\n' {
			res = append(res, '\n')
		}
		res = append(res, ln...)
		prevFolded = !indented
	}
	return res
}

// lineIndentAt returns the indentation of the line containing off.
func (ts *tkState) lineIndentAt(off int) int {
	ls := off
	for ls > 0 && ts.d[ls-1] != '\n' {
		ls--
	}
	n := 0
	for ls+n < len(ts.d) && ts.d[ls+n] == ' ' {
		n++
	}
	return n
}
