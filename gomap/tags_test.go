package gomap

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTag(t *testing.T) {
	tcs := []struct {
		tag     string
		want    tagOptions
		wantErr bool
	}{
		{"", tagOptions{}, false},
		{"name", tagOptions{Name: "name"}, false},
		{"-", tagOptions{Skip: true}, false},
		{"name,omitempty", tagOptions{Name: "name", OmitEmpty: true}, false},
		{",omitempty", tagOptions{OmitEmpty: true}, false},
		{"extra,inline", tagOptions{Name: "extra", Inline: true}, false},
		{"name,bogus", tagOptions{}, true},
	}
	for _, tc := range tcs {
		got, err := parseTag(tc.tag)
		if (err != nil) != tc.wantErr {
			t.Errorf("%q: err = %v, wantErr = %v", tc.tag, err, tc.wantErr)
			continue
		}
		if tc.wantErr {
			continue
		}
		if d := cmp.Diff(tc.want, got); d != "" {
			t.Errorf("%q: (-want +got):\n%s", tc.tag, d)
		}
	}
}

func TestStructFieldsOrderAndNames(t *testing.T) {
	type s struct {
		B string `yaml:"beta"`
		A string
		C string `yaml:"-"`
		d string
	}
	specs, err := structFields(reflect.TypeOf(s{}))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	if d := cmp.Diff([]string{"beta", "A"}, names); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestStructFieldsEmbedded(t *testing.T) {
	specs, err := structFields(reflect.TypeOf(resource{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 2 || specs[0].Name != "kind" || specs[1].Name != "name" {
		t.Errorf("specs = %+v", specs)
	}
	if !reflect.DeepEqual(specs[0].Index, []int{0, 0}) {
		t.Errorf("embedded index = %v", specs[0].Index)
	}
}

func TestStructFieldsDuplicate(t *testing.T) {
	type s struct {
		A string `yaml:"x"`
		B string `yaml:"x"`
	}
	if _, err := structFields(reflect.TypeOf(s{})); err == nil {
		t.Fatal("no error for duplicate names")
	}
}

func TestStructFieldsBadInline(t *testing.T) {
	type s struct {
		N map[int]string `yaml:"n,inline"`
	}
	if _, err := structFields(reflect.TypeOf(s{})); err == nil {
		t.Fatal("no error for non-string-keyed inline map")
	}
}
