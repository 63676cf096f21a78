package order

// DeltaCustomization is a customization annotated with its signed quantity
// change between two order snapshots.
type DeltaCustomization struct {
	Customization
	QtyChange int `json:"qtyChange"`
}

// DeltaEntry describes the incremental change for one item id. NewQty is set
// only on deleted entries, where it is always zero; a pointer keeps it out of
// the payload everywhere else.
type DeltaEntry struct {
	Added          bool                 `json:"added,omitempty"`
	Deleted        bool                 `json:"deleted,omitempty"`
	QtyRemoved     int                  `json:"qtyRemoved,omitempty"`
	NewQty         *int                 `json:"newQty,omitempty"`
	Name           string               `json:"name,omitempty"`
	Customizations []DeltaCustomization `json:"customizations"`
}

// Delta maps item ids to their incremental change. It is the single source of
// truth for what the kitchen must cook or withdraw after a merge.
type Delta map[string]DeltaEntry

// Diff computes the minimal per-item, per-customization change set between a
// prior order snapshot and the merged order that replaced it. Items with zero
// net change are omitted entirely so kitchen notifications never duplicate
// work already dispatched.
func Diff(previous, next Items) Delta {
	delta := Delta{}

	for itemID, nextLine := range next {
		prevLine, existed := previous[itemID]
		if !existed {
			entry := DeltaEntry{
				Added: true,
				Name:  nextLine.Name,
			}
			for _, c := range nextLine.Customizations {
				entry.Customizations = append(entry.Customizations, DeltaCustomization{
					Customization: c.Clone(),
					QtyChange:     c.Qty,
				})
			}
			delta[itemID] = entry
			continue
		}

		var changed []DeltaCustomization
		for _, nc := range nextLine.Customizations {
			key := CanonicalKey(nc)

			qtyChange := nc.Qty
			for _, pc := range prevLine.Customizations {
				if CanonicalKey(pc) == key {
					qtyChange = nc.Qty - pc.Qty
					break
				}
			}

			if qtyChange != 0 {
				changed = append(changed, DeltaCustomization{
					Customization: nc.Clone(),
					QtyChange:     qtyChange,
				})
			}
		}

		if len(changed) > 0 {
			delta[itemID] = DeltaEntry{
				Name:           nextLine.Name,
				Customizations: changed,
			}
		}
	}

	for itemID, prevLine := range previous {
		if _, still := next[itemID]; still {
			continue
		}
		entry := DeltaEntry{
			Deleted:    true,
			QtyRemoved: prevLine.TotalQty(),
			NewQty:     new(int),
			Name:       prevLine.Name,
		}
		for _, c := range prevLine.Customizations {
			entry.Customizations = append(entry.Customizations, DeltaCustomization{
				Customization: c.Clone(),
				QtyChange:     -c.Qty,
			})
		}
		delta[itemID] = entry
	}

	return delta
}
