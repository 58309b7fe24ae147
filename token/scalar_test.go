package token

import "testing"

func TestResolve(t *testing.T) {
	tcs := []struct {
		in   string
		want Kind
	}{
		{"", KindNull},
		{"~", KindNull},
		{"null", KindNull},
		{"NULL", KindNull},
		{"Null", KindNull},
		{"nUll", KindString},
		{"true", KindBool},
		{"False", KindBool},
		{"TRUE", KindBool},
		{"yes", KindString},
		{"on", KindString},
		{"0", KindInt},
		{"-17", KindInt},
		{"+3", KindInt},
		{"0x2A", KindInt},
		{"0o17", KindInt},
		{"0x", KindString},
		{"08", KindInt},
		{"1.5", KindFloat},
		{"-0.0", KindFloat},
		{".5", KindFloat},
		{"5.", KindFloat},
		{".", KindString},
		{"1e3", KindFloat},
		{"2E-7", KindFloat},
		{"1.", KindString},
		{"1e", KindString},
		{".", KindString},
		{".nan", KindFloat},
		{"-.inf", KindFloat},
		{".INF", KindFloat},
		{"1.2.3", KindString},
		{"0x2Ag", KindString},
		{"hello", KindString},
		{"-foo", KindString},
	}
	for _, tc := range tcs {
		if got := Resolve(tc.in); got != tc.want {
			t.Errorf("Resolve(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNeedsQuote(t *testing.T) {
	tcs := []struct {
		in   string
		want bool
	}{
		{"hello", false},
		{"two words", false},
		{"-x", false},
		{"a-b:c", false},
		{"x#y", false},
		{"", true},
		{"null", true},
		{"~", true},
		{"true", true},
		{"12", true},
		{"0.5", true},
		{".nan", true},
		{" pad", true},
		{"pad ", true},
		{"---", true},
		{"--- doc", true},
		{"- item", true},
		{"? key", true},
		{"a: b", true},
		{"trailing:", true},
		{"a #comment", true},
		{"[x]", true},
		{"a,b", true},
		{"{", true},
		{"&anchor", true},
		{"*alias", true},
		{"!tag", true},
		{"|block", true},
		{"a\nb", true},
		{"a\tb", true},
		{"'quoted'", true},
		{"\"quoted\"", true},
		{"%directive", true},
	}
	for _, tc := range tcs {
		if got := NeedsQuote(tc.in); got != tc.want {
			t.Errorf("NeedsQuote(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
