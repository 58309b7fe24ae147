package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/yaml-format/go-yaml/ir"
	"github.com/signadot/yaml-format/go-yaml/token"
)

func mustParse(t *testing.T, in string, opts ...ParseOption) *ir.Node {
	t.Helper()
	node, err := Parse([]byte(in), opts...)
	if err != nil {
		t.Fatalf("Parse(%q): %v", in, err)
	}
	return node
}

func mustKeyVals(t *testing.T, kvs []ir.KeyVal) *ir.Node {
	t.Helper()
	node, err := ir.FromKeyVals(kvs)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestParseScalars(t *testing.T) {
	tcs := []struct {
		in   string
		want *ir.Node
	}{
		{"", ir.Null()},
		{"~\n", ir.Null()},
		{"null\n", ir.Null()},
		{"true\n", ir.FromBool(true)},
		{"False\n", ir.FromBool(false)},
		{"42\n", ir.FromInt(42)},
		{"-0x10\n", ir.FromInt(-16)},
		{"0.1\n", ir.FromFloat(0.1)},
		{"1e3\n", ir.FromFloat(1000)},
		{"hello\n", ir.FromString("hello")},
		{"'true'\n", ir.FromString("true")},
		{"\"42\"\n", ir.FromString("42")},
		{"yes\n", ir.FromString("yes")},
		{"|\n  body\n", ir.FromString("body\n")},
	}
	for _, tc := range tcs {
		got := mustParse(t, tc.in)
		if !ir.Equal(got, tc.want) {
			t.Errorf("Parse(%q) = %v (%v), want %v", tc.in, got, got.Type, tc.want)
		}
	}
}

func TestParseMapping(t *testing.T) {
	got := mustParse(t, "a: 1\nb:\n  c: x\n  d:\n")
	want := mustKeyVals(t, []ir.KeyVal{
		{Key: ir.FromString("a"), Val: ir.FromInt(1)},
		{Key: ir.FromString("b"), Val: mustKeyVals(t, []ir.KeyVal{
			{Key: ir.FromString("c"), Val: ir.FromString("x")},
			{Key: ir.FromString("d"), Val: ir.Null()},
		})},
	})
	if !ir.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	// insertion order survives
	if got.Fields[0].String != "a" || got.Fields[1].String != "b" {
		t.Errorf("field order not preserved: %v", got.Fields)
	}
}

func TestParseSequence(t *testing.T) {
	got := mustParse(t, "- 1\n- [a, b]\n- k: v\n")
	want := ir.FromSlice([]*ir.Node{
		ir.FromInt(1),
		ir.FromSlice([]*ir.Node{ir.FromString("a"), ir.FromString("b")}),
		mustKeyVals(t, []ir.KeyVal{{Key: ir.FromString("k"), Val: ir.FromString("v")}}),
	})
	if !ir.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseNonStringKeys(t *testing.T) {
	got := mustParse(t, "1: a\ntrue: b\nnull: c\n")
	if len(got.Fields) != 3 {
		t.Fatalf("got %d entries", len(got.Fields))
	}
	if got.Fields[0].Type != ir.NumberType {
		t.Errorf("key 1 parsed as %v", got.Fields[0].Type)
	}
	if got.Fields[1].Type != ir.BoolType {
		t.Errorf("key true parsed as %v", got.Fields[1].Type)
	}
	if got.Fields[2].Type != ir.NullType {
		t.Errorf("key null parsed as %v", got.Fields[2].Type)
	}
}

func TestParseCollectionKeys(t *testing.T) {
	got := mustParse(t, "[a, b]: pair\n")
	if len(got.Fields) != 1 {
		t.Fatalf("got %d entries", len(got.Fields))
	}
	key := got.Fields[0]
	if key.Type != ir.SequenceType || len(key.Values) != 2 {
		t.Fatalf("key parsed as %v", key.Type)
	}
	if s, ok := key.Values[0].AsString(); !ok || s != "a" {
		t.Errorf("key[0] = %q, %v", s, ok)
	}
	if s, ok := got.Values[0].AsString(); !ok || s != "pair" {
		t.Errorf("value = %q, %v", s, ok)
	}
}

func TestParseDuplicateKey(t *testing.T) {
	_, err := Parse([]byte("a: 1\na: 2\n"))
	if !errors.Is(err, ErrDuplicateMapKey) {
		t.Fatalf("err = %v, want ErrDuplicateMapKey", err)
	}
	// structural duplicates, not textual: 0x10 and 16 collide
	_, err = Parse([]byte("0x10: 1\n16: 2\n"))
	if !errors.Is(err, ErrDuplicateMapKey) {
		t.Fatalf("err = %v, want ErrDuplicateMapKey", err)
	}
}

func TestParseAliasExpansion(t *testing.T) {
	got := mustParse(t, "base: &b\n  x: 1\ncopy: *b\n")
	base := ir.Get(got, "base")
	cp := ir.Get(got, "copy")
	if !ir.Equal(base, cp) {
		t.Fatalf("copy differs: %v vs %v", base, cp)
	}
	if base == cp {
		t.Fatal("alias must deep-copy, not share")
	}
	// mutating the copy leaves the original alone
	cp.Values[0].Int64 = int64p(99)
	if ir.Equal(base, cp) {
		t.Error("copy still aliased to base")
	}
}

func TestParseAliasScalar(t *testing.T) {
	got := mustParse(t, "a: &x 7\nb: *x\n")
	if v, ok := ir.Get(got, "b").AsInt(); !ok || v != 7 {
		t.Errorf("b = %v", ir.Get(got, "b"))
	}
}

func TestParseUnknownAnchor(t *testing.T) {
	for _, in := range []string{
		"a: *nowhere\n",
		"a: *fwd\nfwd: &fwd 1\n", // no forward references
		"a: &a\n  self: *a\n",    // no self reference either
	} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrUnknownAnchor) {
			t.Errorf("Parse(%q) err = %v, want ErrUnknownAnchor", in, err)
		}
	}
}

func TestParseAnchorsResetPerDocument(t *testing.T) {
	_, err := ParseAll([]byte("a: &x 1\n---\nb: *x\n"))
	if !errors.Is(err, ErrUnknownAnchor) {
		t.Errorf("err = %v, want ErrUnknownAnchor", err)
	}
}

func TestParseMergeKeys(t *testing.T) {
	in := `defaults: &d
  retries: 3
  timeout: 10
svc:
  <<: *d
  timeout: 30
`
	got := mustParse(t, in)
	svc := ir.Get(got, "svc")
	if v, _ := ir.Get(svc, "timeout").AsInt(); v != 30 {
		t.Errorf("explicit key must win, got timeout=%d", v)
	}
	if v, _ := ir.Get(svc, "retries").AsInt(); v != 3 {
		t.Errorf("merged key missing, got retries=%d", v)
	}
	// explicit entries come first, merged entries after
	if svc.Fields[0].String != "timeout" || svc.Fields[1].String != "retries" {
		t.Errorf("entry order: %v", svc.Fields)
	}
}

func TestParseMergeSequence(t *testing.T) {
	in := `a: &a
  x: 1
b: &b
  x: 2
  y: 2
m:
  <<: [*a, *b]
`
	got := mustParse(t, in)
	m := ir.Get(got, "m")
	if v, _ := ir.Get(m, "x").AsInt(); v != 1 {
		t.Errorf("earlier merge source must win, x=%d", v)
	}
	if v, _ := ir.Get(m, "y").AsInt(); v != 2 {
		t.Errorf("y=%d", v)
	}
}

func TestParseMergeBadSource(t *testing.T) {
	if _, err := Parse([]byte("m:\n  <<: 3\n")); !errors.Is(err, ErrSyntax) {
		t.Errorf("err = %v, want ErrSyntax", err)
	}
}

func TestParseTags(t *testing.T) {
	got := mustParse(t, "a: !!str 1\nb: !!int '3'\nc: !custom 1\nd: !pair [1, 2]\n")
	if v, ok := ir.Get(got, "a").AsString(); !ok || v != "1" {
		t.Errorf("a = %v", ir.Get(got, "a"))
	}
	if v, ok := ir.Get(got, "b").AsInt(); !ok || v != 3 {
		t.Errorf("b = %v", ir.Get(got, "b"))
	}
	c := ir.Get(got, "c")
	if c.Tag != "!custom" {
		t.Errorf("c.Tag = %q", c.Tag)
	}
	if v, ok := c.AsInt(); !ok || v != 1 {
		t.Errorf("tagged scalar keeps its resolved value: %v", c)
	}
	d := ir.Get(got, "d")
	if d.Tag != "!pair" || d.Type != ir.SequenceType {
		t.Errorf("d = %v tag %q", d.Type, d.Tag)
	}
}

func TestParseInvalidTag(t *testing.T) {
	for _, in := range []string{
		"a: !!int x\n",
		"a: !!bool 3\n",
		"a: !!float text\n",
		"a: !!str [1]\n",
		"a: !!map [1]\n",
	} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrInvalidTag) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidTag", in, err)
		}
	}
}

func TestParseAllDocuments(t *testing.T) {
	docs, err := ParseAll([]byte("1\n---\n- a\n---\nk: v\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d docs", len(docs))
	}
	want := []ir.Type{ir.NumberType, ir.SequenceType, ir.MappingType}
	for i, d := range docs {
		if d.Type != want[i] {
			t.Errorf("doc %d: %v, want %v", i, d.Type, want[i])
		}
	}
}

func TestParseEmptyStream(t *testing.T) {
	docs, err := ParseAll(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d docs, want 0", len(docs))
	}
	node := mustParse(t, "")
	if !node.IsNull() {
		t.Errorf("empty input = %v, want null", node)
	}
}

func TestParseMultiDocumentViaParse(t *testing.T) {
	if _, err := Parse([]byte("1\n---\n2\n")); !errors.Is(err, ErrSyntax) {
		t.Errorf("err = %v, want ErrSyntax", err)
	}
}

func TestParseDepthLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString(strings.Repeat(" ", i))
		b.WriteString("k:\n")
	}
	_, err := Parse([]byte(b.String()), MaxDepth(10))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("err = %v, want ErrRecursionLimit", err)
	}
	if _, err := Parse([]byte(b.String())); err != nil {
		t.Errorf("default depth rejects 40 levels: %v", err)
	}
}

func TestParseDeepFlowNesting(t *testing.T) {
	// nesting beyond what the event builder tracks must surface as an
	// error, never exhaust the stack
	in := strings.Repeat("[", 500000)
	_, err := Parse([]byte(in))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("err = %v, want ErrRecursionLimit", err)
	}
}

func TestParseAliasAmplificationLimit(t *testing.T) {
	// each level aliases the previous one several times; growth is
	// exponential and must trip the expansion budget
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i < 10; i++ {
		prev := string(rune('0' + i - 1))
		cur := string(rune('0' + i))
		b.WriteString("l" + cur + ": &l" + cur + " [*l" + prev)
		for j := 0; j < 9; j++ {
			b.WriteString(", *l" + prev)
		}
		b.WriteString("]\n")
	}
	_, err := Parse([]byte(b.String()))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("err = %v, want ErrRecursionLimit", err)
	}
}

func TestParsePositions(t *testing.T) {
	pos := map[*ir.Node]*token.Pos{}
	node := mustParse(t, "a: 1\nb: 2\n", ParsePositions(pos))
	b := ir.Get(node, "b")
	p, ok := pos[b]
	if !ok {
		t.Fatal("no position for b's value")
	}
	if p.Line() != 1 {
		t.Errorf("line = %d, want 1", p.Line())
	}
}

func TestParseErrorRendersPosition(t *testing.T) {
	_, err := Parse([]byte("a: 1\na: 2\n"))
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("err type %T", err)
	}
	if !strings.Contains(pe.Error(), "duplicate") {
		t.Errorf("message: %s", pe.Error())
	}
}

func int64p(v int64) *int64 { return &v }
