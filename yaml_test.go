package yaml

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/yaml-format/go-yaml/gomap"
	"github.com/signadot/yaml-format/go-yaml/ir"
	"github.com/signadot/yaml-format/go-yaml/parse"
)

type config struct {
	Name     string            `yaml:"name"`
	Replicas int               `yaml:"replicas,omitempty"`
	Labels   map[string]string `yaml:"labels,omitempty"`
	Command  []string          `yaml:"command,omitempty"`
}

func TestMarshal(t *testing.T) {
	got, err := Marshal(config{
		Name:     "web",
		Replicas: 3,
		Command:  []string{"run", "--verbose"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `name: web
replicas: 3
command:
  - run
  - --verbose
`
	if string(got) != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnmarshal(t *testing.T) {
	var cfg config
	err := Unmarshal([]byte("name: web\nreplicas: 2\nlabels:\n  app: web\n"), &cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := config{Name: "web", Replicas: 2, Labels: map[string]string{"app": "web"}}
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := config{
		Name:     "api",
		Replicas: 5,
		Labels:   map[string]string{"tier": "backend", "team": "infra"},
		Command:  []string{"serve"},
	}
	data, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out config
	if err := Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestUnmarshalStrict(t *testing.T) {
	var cfg config
	err := Unmarshal([]byte("name: web\nbogus: 1\n"), &cfg, gomap.DisallowUnknownFields())
	var ue *gomap.UnmarshalError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UnmarshalError", err)
	}
}

func TestUnmarshalSyntaxError(t *testing.T) {
	var cfg config
	err := Unmarshal([]byte("a: b\n bad indent\n"), &cfg)
	if err == nil {
		t.Fatal("no error")
	}
}

func TestParseAllDocuments(t *testing.T) {
	docs, err := ParseAll([]byte("---\na: 1\n---\nb: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents", len(docs))
	}
	if _, err := Parse([]byte("---\na: 1\n---\nb: 2\n")); !errors.Is(err, parse.ErrSyntax) {
		t.Errorf("Parse on multi-doc: err = %v", err)
	}
}

func TestEncodeString(t *testing.T) {
	node, err := Parse([]byte("a: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := EncodeString(node)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a: 1" {
		t.Errorf("got %q", got)
	}
}

func TestReserializationIsIdempotent(t *testing.T) {
	texts := []string{
		"a: 1\nb:\n  - x\n  - y: true\nc: 'null'\n",
		"s: |\n  line one\n  line two\n",
		"m: &base\n  k: v\n",
	}
	for _, text := range texts {
		node, err := Parse([]byte(text))
		if err != nil {
			t.Fatalf("%q: %v", text, err)
		}
		once, err := EncodeString(node)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Parse([]byte(once + "\n"))
		if err != nil {
			t.Fatalf("re-parse %q: %v", once, err)
		}
		twice, err := EncodeString(back)
		if err != nil {
			t.Fatal(err)
		}
		if once != twice {
			t.Errorf("not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
		if !ir.Equal(node, back) {
			t.Errorf("%q: round trip changed value", text)
		}
	}
}
