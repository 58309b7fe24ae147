package yaml

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/yaml-format/go-yaml/ir"
)

// Diff returns a unified-style text diff of the canonical encodings of
// two documents, or "" when they encode identically.
func Diff(from, to *ir.Node) (string, error) {
	fromText, err := EncodeString(from)
	if err != nil {
		return "", err
	}
	toText, err := EncodeString(to)
	if err != nil {
		return "", err
	}
	return DiffText(fromText+"\n", toText+"\n"), nil
}

// DiffText line-diffs two texts. Lines are prefixed "-", "+", or two
// spaces.
func DiffText(from, to string) string {
	if from == to {
		return ""
	}
	dmp := diffpatch.New()
	fromRunes, toRunes, lines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffMainRunes(fromRunes, toRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out []byte
	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitLines(diff.Text) {
			out = append(out, prefix...)
			out = append(out, line...)
			out = append(out, '\n')
		}
	}
	return string(out)
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
