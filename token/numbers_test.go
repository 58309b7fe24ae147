package token

import (
	"math"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	tcs := []struct {
		in   float64
		want string
	}{
		{0.1, "0.1"},
		{1.0, "1.0"},
		{-2.5, "-2.5"},
		{0, "0.0"},
		{1e100, "1e+100"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{math.Inf(1), ".inf"},
		{math.Inf(-1), "-.inf"},
		{math.NaN(), ".nan"},
	}
	for _, tc := range tcs {
		if got := FormatFloat(tc.in); got != tc.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{
		0.1, 1.0 / 3.0, math.Pi, math.SmallestNonzeroFloat64,
		math.MaxFloat64, -0.0, 6.02e23,
	} {
		got, err := ParseFloat(FormatFloat(f))
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", FormatFloat(f), err)
		}
		if math.Float64bits(got) != math.Float64bits(f) {
			t.Errorf("round trip %v -> %q -> %v", f, FormatFloat(f), got)
		}
	}
}

func TestParseInt(t *testing.T) {
	tcs := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"-17", -17},
		{"+9", 9},
		{"0x2A", 42},
		{"0o17", 15},
		{"-0x10", -16},
		{"9223372036854775807", math.MaxInt64},
		{"-9223372036854775808", math.MinInt64},
	}
	for _, tc := range tcs {
		got, err := ParseInt(tc.in)
		if err != nil {
			t.Fatalf("ParseInt(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseNumberOverflowFallsBackToFloat(t *testing.T) {
	i, f, err := ParseNumber("9223372036854775808", KindInt)
	if err != nil {
		t.Fatal(err)
	}
	if i != nil {
		t.Fatalf("want float fallback, got int %d", *i)
	}
	if f == nil || *f != 9.223372036854776e18 {
		t.Errorf("got %v", f)
	}
}

func TestParseNumberInf(t *testing.T) {
	_, f, err := ParseNumber("-.inf", KindFloat)
	if err != nil {
		t.Fatal(err)
	}
	if f == nil || !math.IsInf(*f, -1) {
		t.Errorf("got %v", f)
	}
}

func TestParseFloatNaN(t *testing.T) {
	f, err := ParseFloat(".NaN")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(f) {
		t.Errorf("got %v", f)
	}
}
