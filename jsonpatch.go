package jsondelta

import (
	"encoding/json"
	"sort"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// RFC 6902 bridge: deltas flatten into ordinary JSON Patches so hosts that
// already speak json-patch can apply them without knowing this package's
// delta form.

type rfc6902Op struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSONPatch renders the delta as an RFC 6902 JSON Patch document.
// The empty delta renders as the empty patch; a full-replacement delta
// becomes a single replace of the root pointer. A root replace carrying a
// scalar is valid RFC 6902 but evanphx/json-patch refuses to apply it (root
// values must be containers there); use Delta.Apply for those deltas.
func (d *Delta) MarshalJSONPatch() ([]byte, error) {
	ops := d.appendPatchOps(nil, "")
	if ops == nil {
		ops = []rfc6902Op{}
	}
	return json.Marshal(ops)
}

// JSONPatch returns the delta as a decoded evanphx/json-patch Patch, ready
// to Apply to encoded documents.
func (d *Delta) JSONPatch() (jsonpatch.Patch, error) {
	b, err := d.MarshalJSONPatch()
	if err != nil {
		return nil, err
	}
	return jsonpatch.DecodePatch(b)
}

func (d *Delta) appendPatchOps(ops []rfc6902Op, prefix string) []rfc6902Op {
	if d.replace {
		return append(ops, rfc6902Op{Op: "replace", Path: prefix, Value: marshalJSONValue(d.value)})
	}
	for _, k := range sortedKeys(d.removed) {
		ops = append(ops, rfc6902Op{Op: "remove", Path: prefix + "/" + escapePointerToken(k)})
	}
	for _, k := range sortedKeys(d.added) {
		ops = append(ops, rfc6902Op{Op: "add", Path: prefix + "/" + escapePointerToken(k), Value: marshalJSONValue(d.added[k])})
	}
	for _, k := range sortedKeys(d.changed) {
		ops = d.changed[k].appendPatchOps(ops, prefix+"/"+escapePointerToken(k))
	}
	return ops
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escapePointerToken applies RFC 6901 escaping: '~' before '/', in that
// order.
func escapePointerToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
