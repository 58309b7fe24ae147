package yaml

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/yaml-format/go-yaml/debug"
	"github.com/signadot/yaml-format/go-yaml/ir"
)

// Patch applies an RFC 6902 JSON patch to a document. The document is
// bridged through JSON, so tags and anchors do not survive and the
// document must be JSON-representable.
func Patch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}
	return applyPatch(doc, ops)
}

// PatchYAML is Patch with the operations given as a YAML sequence
// instead of JSON.
func PatchYAML(doc *ir.Node, patch []byte) (*ir.Node, error) {
	patchJSON, err := ToJSON(patch)
	if err != nil {
		return nil, fmt.Errorf("reading patch: %w", err)
	}
	ops, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}
	return applyPatch(doc, ops)
}

func applyPatch(doc *ir.Node, ops jsonpatch.Patch) (*ir.Node, error) {
	if debug.Patch() {
		debug.Logf("patching %s with %d ops\n", debug.Yaml{Node: doc}, len(ops))
	}
	d, err := ir.ToJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return ir.FromJSON(out)
}
