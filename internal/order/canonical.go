package order

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// VariationKey normalizes a variation mapping into a comparable string.
// Only values matter: they are flattened, split on commas, trimmed and
// sorted so key order and comma-joined inputs compare equal.
func VariationKey(variation map[string]any) string {
	if len(variation) == 0 {
		return ""
	}

	values := make([]string, 0, len(variation))
	for _, v := range variation {
		values = append(values, fmt.Sprintf("%v", v))
	}

	var parts []string
	for _, segment := range strings.Split(strings.Join(values, ", "), ",") {
		parts = append(parts, strings.TrimSpace(segment))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// AddonsKey normalizes an addon mapping into a comparable string. Group keys
// are sorted, each selection's own keys are sorted into k:v pairs, and the
// per-selection strings are sorted before joining, so neither group order nor
// array order affects the result.
func AddonsKey(addons map[string][]AddonSelection) string {
	if len(addons) == 0 {
		return ""
	}

	groups := make([]string, 0, len(addons))
	for key := range addons {
		groups = append(groups, key)
	}
	sort.Strings(groups)

	serialized := make([]string, 0, len(groups))
	for _, key := range groups {
		selections := make([]string, 0, len(addons[key]))
		for _, sel := range addons[key] {
			attrs := make([]string, 0, len(sel))
			for k := range sel {
				attrs = append(attrs, k)
			}
			sort.Strings(attrs)

			pairs := make([]string, 0, len(attrs))
			for _, k := range attrs {
				pairs = append(pairs, fmt.Sprintf("%s:%v", k, sel[k]))
			}
			selections = append(selections, strings.Join(pairs, ","))
		}
		sort.Strings(selections)
		serialized = append(serialized, key+":"+strings.Join(selections, "|"))
	}
	return strings.Join(serialized, ", ")
}

// CanonicalKey derives a stable identity for a customization. Two
// customizations with equal keys are the same semantic selection and their
// quantities may be summed. The key is opaque: strictly for equality checks.
func CanonicalKey(c Customization) string {
	key := struct {
		Variation string `json:"variation"`
		Addons    string `json:"addons"`
	}{
		Variation: VariationKey(c.Variation),
		Addons:    AddonsKey(c.Addons),
	}
	out, _ := json.Marshal(key)
	return string(out)
}
