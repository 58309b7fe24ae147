package ir

import (
	"errors"
	"testing"
)

func mustKeyVals(t *testing.T, kvs []KeyVal) *Node {
	t.Helper()
	node, err := FromKeyVals(kvs)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestEqualScalars(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		eq   bool
	}{
		{"null-null", Null(), Null(), true},
		{"null-bool", Null(), FromBool(false), false},
		{"bool", FromBool(true), FromBool(true), true},
		{"int", FromInt(3), FromInt(3), true},
		{"int-neq", FromInt(3), FromInt(4), false},
		{"int-float", FromInt(1), FromFloat(1), false},
		{"float", FromFloat(0.1), FromFloat(0.1), true},
		{"string", FromString("a"), FromString("a"), true},
		{"string-tagged", FromString("a"), FromString("a").WithTag("!!str"), false},
		{"string-anchored", FromString("a"), FromString("a").WithAnchor("x"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.eq {
				t.Errorf("Equal = %t, want %t", got, tt.eq)
			}
			if tt.eq && tt.a.Hash() != tt.b.Hash() {
				t.Errorf("equal nodes hash differently")
			}
		})
	}
}

func TestEqualMappingOrderIndependent(t *testing.T) {
	a := mustKeyVals(t, []KeyVal{
		{Key: FromString("x"), Val: FromInt(1)},
		{Key: FromString("y"), Val: FromInt(2)},
	})
	b := mustKeyVals(t, []KeyVal{
		{Key: FromString("y"), Val: FromInt(2)},
		{Key: FromString("x"), Val: FromInt(1)},
	})
	if !Equal(a, b) {
		t.Errorf("mappings with same entries in different order not Equal")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("reordered mappings hash differently")
	}
	c := mustKeyVals(t, []KeyVal{
		{Key: FromString("x"), Val: FromInt(1)},
		{Key: FromString("y"), Val: FromInt(3)},
	})
	if Equal(a, c) {
		t.Errorf("mappings with different values Equal")
	}
}

func TestEqualNonStringKeys(t *testing.T) {
	a := mustKeyVals(t, []KeyVal{
		{Key: FromSlice([]*Node{FromInt(1), FromInt(2)}), Val: FromString("v")},
	})
	b := mustKeyVals(t, []KeyVal{
		{Key: FromSlice([]*Node{FromInt(1), FromInt(2)}), Val: FromString("v")},
	})
	if !Equal(a, b) {
		t.Errorf("sequence-keyed mappings not Equal")
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	_, err := FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromInt(1)},
		{Key: FromString("a"), Val: FromInt(2)},
	})
	if err == nil {
		t.Fatalf("expected duplicate key error")
	}
	var dke *DuplicateKeyError
	if !errors.As(err, &dke) {
		t.Fatalf("expected DuplicateKeyError, got %T", err)
	}
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("error does not unwrap to ErrDuplicateKey")
	}
}

func TestCompareTotalOrder(t *testing.T) {
	ordered := []*Node{
		Null(),
		FromBool(false),
		FromBool(true),
		FromInt(1),
		FromFloat(1),
		FromInt(2),
		FromString("a"),
		FromString("b"),
		FromSlice(nil),
		FromSlice([]*Node{FromInt(1)}),
		mustKeyVals(t, nil),
	}
	for i := range ordered {
		for j := range ordered {
			got := Compare(ordered[i], ordered[j])
			var want int
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			if got != want {
				t.Errorf("Compare(%d, %d) = %d, want %d", i, j, got, want)
			}
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := mustKeyVals(t, []KeyVal{
		{Key: FromString("a"), Val: FromSlice([]*Node{FromInt(1)})},
	})
	cp := orig.Clone()
	if !Equal(orig, cp) {
		t.Fatalf("clone not equal to original")
	}
	cp.Values[0].Values[0].Int64 = int64p(99)
	if Equal(orig, cp) {
		t.Errorf("mutating clone affected original")
	}
	if v, _ := orig.Values[0].Values[0].AsInt(); v != 1 {
		t.Errorf("original mutated through clone, got %d", v)
	}
}

func int64p(v int64) *int64 { return &v }
