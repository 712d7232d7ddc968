package blocks

import (
	"encoding/json"
	"reflect"
)

// DecodeProps decodes stored instance props into a map. Undecodable data
// degrades to an empty map; rendering never fails on bad history.
func DecodeProps(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

// ApplyDefaults fills missing props from the template's defaults and
// replaces values whose JSON type drifted from the schema. Unknown props
// are kept: an evolved schema must not destroy historical data.
func ApplyDefaults(t Template, props map[string]any) map[string]any {
	out := make(map[string]any, len(props)+len(t.Defaults))
	for k, v := range props {
		out[k] = v
	}
	for k, def := range t.Defaults {
		v, ok := out[k]
		if !ok || !sameJSONKind(v, def) {
			out[k] = def
		}
	}
	return out
}

// ResolveVariant picks the instance's concrete visual form from its own
// "variant" prop. Absent or unrecognized values fall back to the template
// default. Selection is pure and never looks at surrounding blocks.
func ResolveVariant(t Template, props map[string]any) string {
	v, _ := props["variant"].(string)
	if v != "" {
		for _, known := range t.Variants {
			if v == known {
				return v
			}
		}
	}
	return t.DefaultVariant
}

func sameJSONKind(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ka := reflect.TypeOf(a).Kind()
	kb := reflect.TypeOf(b).Kind()
	return ka == kb
}
