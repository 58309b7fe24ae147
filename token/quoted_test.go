package token

import "testing"

func TestQuoteSingle(t *testing.T) {
	tcs := []struct {
		in   string
		want string
	}{
		{"hello", "'hello'"},
		{"it's", "'it''s'"},
		{"a: b", "'a: b'"},
		{"", "''"},
	}
	for _, tc := range tcs {
		if got := QuoteSingle(tc.in); got != tc.want {
			t.Errorf("QuoteSingle(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestQuoteDouble(t *testing.T) {
	tcs := []struct {
		in   string
		want string
	}{
		{"a\nb", `"a\nb"`},
		{"tab\there", `"tab\there"`},
		{`back\slash`, `"back\\slash"`},
		{`say "hi"`, `"say \"hi\""`},
		{"\x00", `"\0"`},
		{"\x07", `"\x07"`},
		{"café", "\"café\""},
	}
	for _, tc := range tcs {
		if got := QuoteDouble(tc.in); got != tc.want {
			t.Errorf("QuoteDouble(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestCanSingleQuote(t *testing.T) {
	if !CanSingleQuote("plain enough") {
		t.Error("plain text should single quote")
	}
	if CanSingleQuote("has\nnewline") {
		t.Error("newlines cannot single quote")
	}
	if CanSingleQuote("bell\x07") {
		t.Error("control chars cannot single quote")
	}
}

func TestUnquoteDouble(t *testing.T) {
	tcs := []struct {
		in   string
		want string
	}{
		{`a\nb`, "a\nb"},
		{`\"q\"`, `"q"`},
		{`\\`, `\`},
		{`\x41`, "A"},
		{`é`, "é"},
		{`\U0001F600`, "\U0001F600"},
		{`\0`, "\x00"},
	}
	for _, tc := range tcs {
		got, _, err := unquoteDouble([]byte(tc.in))
		if err != nil {
			t.Fatalf("unquoteDouble(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("unquoteDouble(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, _, err := unquoteDouble([]byte(`\q`)); err == nil {
		t.Error("bad escape should error")
	}
}
