// Package token scans YAML text into tokens and hosts the scalar
// conventions shared by the reader and writer sides of the module.
//
// The scanner (Tokenize) is line oriented: every content line in block
// context starts with a TIndent token carrying the line's indentation,
// and block nesting is left for the event layer to resolve from token
// columns. Quoted and block scalars are decoded during scanning, so a
// TSingle, TDouble, TLiteral, or TFolded token carries the final string
// bytes rather than source text.
//
// Alongside the scanner live:
//
//   - Resolve and NeedsQuote, the plain-scalar typing rules
//   - FormatInt, FormatFloat, ParseInt, ParseFloat, ParseNumber,
//     the number round-trip conventions
//   - QuoteSingle, QuoteDouble, CanSingleQuote, the quoting rules
//   - Pos and PosDoc, byte-offset positions with line/column rendering
//
// Positions refer to byte offsets in the scanned document; PosDoc
// learns newline offsets as the scanner advances, so line/column
// information is available for any offset the scanner has passed.
package token
