package stream

import (
	"bytes"
	"testing"
)

func TestEncoderMapping(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	if err := e.BeginDocument(); err != nil {
		t.Fatal(err)
	}
	if err := e.BeginMapping(); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteKey("a"); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteInt(1); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteKey("b"); err != nil {
		t.Fatal(err)
	}
	if err := e.BeginSequence(); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteString("x"); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteBool(true); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteNull(); err != nil {
		t.Fatal(err)
	}
	if err := e.EndSequence(); err != nil {
		t.Fatal(err)
	}
	if err := e.EndMapping(); err != nil {
		t.Fatal(err)
	}
	if err := e.EndDocument(); err != nil {
		t.Fatal(err)
	}
	want := "{a: 1, b: [x, true, null]}"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncoderCompact(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, WithCompact())
	e.BeginDocument()
	e.BeginMapping()
	e.WriteKey("a")
	e.WriteInt(1)
	e.WriteKey("b")
	e.WriteInt(2)
	e.EndMapping()
	e.EndDocument()
	want := "{a:1,b:2}"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncoderQuotesKeysAndValues(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.BeginDocument()
	e.BeginMapping()
	e.WriteKey("true")
	e.WriteString("null")
	e.EndMapping()
	e.EndDocument()
	want := "{'true': 'null'}"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncoderAnchorsAndTags(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.BeginDocument()
	e.BeginMapping()
	e.WriteKey("a")
	e.Anchor("x")
	e.Tag("!!str")
	if err := e.WriteString("v"); err != nil {
		t.Fatal(err)
	}
	e.WriteKey("b")
	if err := e.WriteAlias("x"); err != nil {
		t.Fatal(err)
	}
	e.EndMapping()
	e.EndDocument()
	want := "{a: &x !!str v, b: *x}"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncoderStateErrors(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	if err := e.WriteInt(1); err == nil {
		t.Error("value outside document should fail")
	}
	e.BeginDocument()
	if err := e.WriteKey("a"); err == nil {
		t.Error("key outside mapping should fail")
	}
	e.BeginMapping()
	e.WriteKey("a")
	if err := e.EndMapping(); err == nil {
		t.Error("key without value should fail")
	}
}

func TestEncoderMultiDocument(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.BeginDocument()
	e.WriteInt(1)
	e.EndDocument()
	e.BeginDocument()
	e.WriteInt(2)
	e.EndDocument()
	want := "1\n--- 2"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncoderReplay(t *testing.T) {
	in := "a: 1\nb: [x, 'null']\n"
	evs, err := Events([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	for i := range evs {
		if err := e.WriteEvent(&evs[i]); err != nil {
			t.Fatalf("event %d (%s): %v", i, evs[i].String(), err)
		}
	}
	want := "{a: 1, b: [x, 'null']}"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	// and the flow form decodes to the same events modulo flow flags
	evs2, err := Events(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(evs2) != len(evs) {
		t.Errorf("replayed stream has %d events, want %d", len(evs2), len(evs))
	}
}
