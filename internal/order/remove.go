package order

import (
	"fmt"
	"sort"
)

// RemoveCustomization drops the customizations of a line that match the given
// variation id and/or addon group keys. Matching is positional on the two
// selectors:
//   - both given: variation id and the full addon-group key set must match
//   - only variation id: the customization must also carry no addons
//   - only addon groups: the customization must also carry no variation
//   - neither: only a bare customization (no variation, no addons) matches
//
// The returned bool reports whether the line is now empty and should be
// deleted from the order.
func RemoveCustomization(line Line, variationID string, addonGroups []string) (Line, bool) {
	kept := line.Customizations[:0:0]

	for _, c := range line.Customizations {
		if !removalMatches(c, variationID, addonGroups) {
			kept = append(kept, c)
		}
	}

	line.Customizations = kept
	return line, len(kept) == 0
}

func removalMatches(c Customization, variationID string, addonGroups []string) bool {
	hasVariationID := variationID != ""
	hasAddonGroups := len(addonGroups) > 0

	variationMatches := false
	if id, ok := c.Variation["id"]; ok {
		variationMatches = fmt.Sprintf("%v", id) == variationID
	}

	keys := make([]string, 0, len(c.Addons))
	for k := range c.Addons {
		keys = append(keys, k)
	}

	switch {
	case hasVariationID && hasAddonGroups:
		return variationMatches && stringSetsEqual(keys, addonGroups)
	case hasVariationID:
		return variationMatches && len(c.Addons) == 0
	case hasAddonGroups:
		return len(c.Variation) == 0 && stringSetsEqual(keys, addonGroups)
	default:
		return len(c.Variation) == 0 && len(c.Addons) == 0
	}
}

func stringSetsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
