package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tk struct {
	Type TokenType
	Text string
}

func toks(t *testing.T, in string) []tk {
	t.Helper()
	got, err := Tokenize([]byte(in))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", in, err)
	}
	res := make([]tk, len(got))
	for i, tok := range got {
		res[i] = tk{tok.Type, string(tok.Bytes)}
	}
	return res
}

func TestTokenizeMapping(t *testing.T) {
	got := toks(t, "a: 1\nb: two\n")
	want := []tk{
		{TIndent, ""},
		{TPlain, "a"},
		{TColon, ":"},
		{TPlain, "1"},
		{TIndent, ""},
		{TPlain, "b"},
		{TColon, ":"},
		{TPlain, "two"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTokenizeSequence(t *testing.T) {
	got := toks(t, "- x\n- - y\n")
	want := []tk{
		{TIndent, ""},
		{TDash, "-"},
		{TPlain, "x"},
		{TIndent, ""},
		{TDash, "-"},
		{TDash, "-"},
		{TPlain, "y"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTokenizeFlow(t *testing.T) {
	got := toks(t, "{a: 1, b: [2, 3]}")
	want := []tk{
		{TIndent, ""},
		{TLCurl, "{"},
		{TPlain, "a"},
		{TColon, ":"},
		{TPlain, "1"},
		{TComma, ","},
		{TPlain, "b"},
		{TColon, ":"},
		{TLSquare, "["},
		{TPlain, "2"},
		{TComma, ","},
		{TPlain, "3"},
		{TRSquare, "]"},
		{TRCurl, "}"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTokenizeDocMarkers(t *testing.T) {
	got := toks(t, "---\na: 1\n...\n--- two\n")
	want := []tk{
		{TDocStart, "---"},
		{TIndent, ""},
		{TPlain, "a"},
		{TColon, ":"},
		{TPlain, "1"},
		{TDocEnd, "..."},
		{TDocStart, "---"},
		{TPlain, "two"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTokenizeAnchorsAliasesTags(t *testing.T) {
	got := toks(t, "a: &x !foo 1\nb: *x\n")
	want := []tk{
		{TIndent, ""},
		{TPlain, "a"},
		{TColon, ":"},
		{TAnchor, "x"},
		{TTag, "!foo"},
		{TPlain, "1"},
		{TIndent, ""},
		{TPlain, "b"},
		{TColon, ":"},
		{TAlias, "x"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTokenizeComments(t *testing.T) {
	got := toks(t, "# head\na: 1 # tail\n  # indented\nb: 2\n")
	want := []tk{
		{TIndent, ""},
		{TPlain, "a"},
		{TColon, ":"},
		{TPlain, "1"},
		{TIndent, ""},
		{TPlain, "b"},
		{TColon, ":"},
		{TPlain, "2"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTokenizeQuoted(t *testing.T) {
	got := toks(t, "a: 'it''s'\nb: \"x\\ny\"\n\"k\": v\n")
	want := []tk{
		{TIndent, ""},
		{TPlain, "a"},
		{TColon, ":"},
		{TSingle, "it's"},
		{TIndent, ""},
		{TPlain, "b"},
		{TColon, ":"},
		{TDouble, "x\ny"},
		{TIndent, ""},
		{TDouble, "k"},
		{TColon, ":"},
		{TPlain, "v"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTokenizeBlockScalars(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		typ  TokenType
		want string
	}{
		{"literal", "a: |\n  one\n  two\n", TLiteral, "one\ntwo\n"},
		{"literal strip", "a: |-\n  one\n", TLiteral, "one"},
		{"literal keep", "a: |+\n  one\n\n", TLiteral, "one\n\n"},
		{"folded", "a: >\n  one\n  two\n", TFolded, "one two\n"},
		{"folded blank", "a: >\n  one\n\n  two\n", TFolded, "one\ntwo\n"},
		{"nested", "a:\n  b: |\n    x\nc: 1\n", TLiteral, "x\n"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := toks(t, tc.in)
			var found *tk
			for i := range got {
				if got[i].Type == tc.typ {
					found = &got[i]
					break
				}
			}
			if found == nil {
				t.Fatalf("no %v token in %v", tc.typ, got)
			}
			if found.Text != tc.want {
				t.Errorf("got %q, want %q", found.Text, tc.want)
			}
		})
	}
}

func TestTokenizeBlockScalarFollowedByKey(t *testing.T) {
	got := toks(t, "a: |\n  x\nb: 2\n")
	want := []tk{
		{TIndent, ""},
		{TPlain, "a"},
		{TColon, ":"},
		{TLiteral, "x\n"},
		{TIndent, ""},
		{TPlain, "b"},
		{TColon, ":"},
		{TPlain, "2"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTokenizeIndent(t *testing.T) {
	got := toks(t, "a:\n  b: 1\n")
	want := []tk{
		{TIndent, ""},
		{TPlain, "a"},
		{TColon, ":"},
		{TIndent, "  "},
		{TPlain, "b"},
		{TColon, ":"},
		{TPlain, "1"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tcs := []struct {
		in   string
		want error
	}{
		{"\ta: 1\n", ErrTabIndent},
		{`a: "unterminated`, ErrUnterminated},
		{"a: 'open\n", ErrUnterminated},
		{`a: "\q"`, ErrEscape},
		{"a: b]c: d\n", nil}, // plain scalar in block context, no error
	}
	for _, tc := range tcs {
		_, err := Tokenize([]byte(tc.in))
		if tc.want == nil {
			if err != nil {
				t.Errorf("Tokenize(%q): unexpected %v", tc.in, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("Tokenize(%q) err = %v, want %v", tc.in, err, tc.want)
		}
		var te *TokenizeErr
		if !errors.As(err, &te) || te.Pos.D == nil {
			t.Errorf("Tokenize(%q): error carries no position", tc.in)
		}
	}
}

func TestPosLineCol(t *testing.T) {
	in := "a: 1\nbb: 2\n"
	got, err := Tokenize([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	// the token "2" sits on line 1 (0-based), column 4
	last := got[len(got)-1]
	line, col := last.Pos.D.LineCol(last.Pos.I)
	if line != 1 || col != 4 {
		t.Errorf("LineCol = %d,%d, want 1,4", line, col)
	}
}
