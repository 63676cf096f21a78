package order

// Merge combines a base order with an incoming cart submission. The base is
// deep-copied and never mutated; the incoming items are read-only. Matching
// customizations (by canonical key) have their quantities summed, new ones are
// appended, and unknown item ids are inserted verbatim so open items keep
// their inline name. Quantity can legitimately reach zero here; removal is a
// separate explicit operation.
func Merge(base, incoming Items) Items {
	merged := base.Clone()

	for itemID, cartLine := range incoming {
		existing, ok := merged[itemID]
		if !ok {
			merged[itemID] = cartLine.Clone()
			continue
		}

		for _, cartCustomization := range cartLine.Customizations {
			key := CanonicalKey(cartCustomization)

			matched := -1
			for i, c := range existing.Customizations {
				if CanonicalKey(c) == key {
					matched = i
					break
				}
			}

			if matched >= 0 {
				existing.Customizations[matched].Qty += cartCustomization.Qty
			} else {
				existing.Customizations = append(existing.Customizations, cartCustomization.Clone())
			}
		}

		merged[itemID] = existing
	}

	return merged
}
