package token

import "fmt"

type TokenType int

const (
	TIndent TokenType = iota // start of line; Bytes holds the indentation
	TDocStart                // ---
	TDocEnd                  // ...
	TDash                    // block sequence entry marker
	TColon                   // mapping key/value separator
	TPlain                   // unquoted scalar; Bytes holds the raw text
	TSingle                  // single-quoted scalar; Bytes holds the decoded text
	TDouble                  // double-quoted scalar; Bytes holds the decoded text
	TLiteral                 // block literal scalar (|); Bytes holds the decoded text
	TFolded                  // block folded scalar (>); Bytes holds the decoded text
	TAnchor                  // &name; Bytes holds the name
	TAlias                   // *name; Bytes holds the name
	TTag                     // tag; Bytes holds the tag verbatim
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TComma
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TIndent:   "TIndent",
		TDocStart: "TDocStart",
		TDocEnd:   "TDocEnd",
		TDash:     "TDash",
		TColon:    "TColon",
		TPlain:    "TPlain",
		TSingle:   "TSingle",
		TDouble:   "TDouble",
		TLiteral:  "TLiteral",
		TFolded:   "TFolded",
		TAnchor:   "TAnchor",
		TAlias:    "TAlias",
		TTag:      "TTag",
		TLCurl:    "TLCurl",
		TRCurl:    "TRCurl",
		TLSquare:  "TLSquare",
		TRSquare:  "TRSquare",
		TComma:    "TComma",
	}[t]
}

// IsScalar reports whether the token carries scalar text.
func (t TokenType) IsScalar() bool {
	switch t {
	case TPlain, TSingle, TDouble, TLiteral, TFolded:
		return true
	default:
		return false
	}
}

// IsQuoted reports whether the scalar style pins the value to a
// string, exempting it from implicit typing.
func (t TokenType) IsQuoted() bool {
	switch t {
	case TSingle, TDouble, TLiteral, TFolded:
		return true
	default:
		return false
	}
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) String() string {
	return string(t.Bytes)
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %q %s", t.Type, string(t.Bytes), t.Pos)
}
