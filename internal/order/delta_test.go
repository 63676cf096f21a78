package order

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDiffAddedItem(t *testing.T) {
	next := Items{
		"itemA": {Customizations: []Customization{plainQty(2, 100)}},
	}

	delta := Diff(Items{}, next)

	entry, ok := delta["itemA"]
	if !ok || !entry.Added {
		t.Fatalf("expected added entry, got %+v", delta)
	}
	if entry.Customizations[0].QtyChange != 2 {
		t.Fatalf("expected qtyChange 2, got %d", entry.Customizations[0].QtyChange)
	}
}

func TestDiffModifiedItem(t *testing.T) {
	previous := Items{"itemA": {Customizations: []Customization{plainQty(2, 100)}}}
	next := Items{"itemA": {Customizations: []Customization{plainQty(3, 100)}}}

	delta := Diff(previous, next)

	entry, ok := delta["itemA"]
	if !ok || entry.Added || entry.Deleted {
		t.Fatalf("expected modified entry, got %+v", delta)
	}
	if entry.Customizations[0].QtyChange != 1 {
		t.Fatalf("expected qtyChange +1, got %d", entry.Customizations[0].QtyChange)
	}
}

func TestDiffNewCustomizationWithinExistingItem(t *testing.T) {
	previous := Items{"itemA": {Customizations: []Customization{
		{Variation: map[string]any{"size": "Large"}, Qty: 1, Price: 300},
	}}}
	next := Items{"itemA": {Customizations: []Customization{
		{Variation: map[string]any{"size": "Large"}, Qty: 1, Price: 300},
		{Variation: map[string]any{"size": "Small"}, Qty: 2, Price: 200},
	}}}

	delta := Diff(previous, next)

	entry := delta["itemA"]
	if len(entry.Customizations) != 1 {
		t.Fatalf("expected only the new customization, got %+v", entry.Customizations)
	}
	if entry.Customizations[0].QtyChange != 2 {
		t.Fatalf("expected qtyChange 2, got %d", entry.Customizations[0].QtyChange)
	}
}

func TestDiffDeletedItem(t *testing.T) {
	previous := Items{"itemA": {Customizations: []Customization{
		plainQty(2, 100),
		{Variation: map[string]any{"size": "Large"}, Qty: 1, Price: 150},
	}}}

	delta := Diff(previous, Items{})

	entry, ok := delta["itemA"]
	if !ok || !entry.Deleted {
		t.Fatalf("expected deleted entry, got %+v", delta)
	}
	if entry.QtyRemoved != 3 {
		t.Fatalf("expected qtyRemoved 3, got %d", entry.QtyRemoved)
	}
	if entry.NewQty == nil || *entry.NewQty != 0 {
		t.Fatalf("deleted entry must carry newQty 0, got %+v", entry.NewQty)
	}
	for _, c := range entry.Customizations {
		if c.QtyChange != -c.Qty {
			t.Fatalf("expected qtyChange -qty, got %+v", c)
		}
	}
}

func TestDiffNewQtyOnlyOnDeletedEntries(t *testing.T) {
	previous := Items{"itemA": {Customizations: []Customization{plainQty(2, 100)}}}
	next := Items{
		"itemA": {Customizations: []Customization{plainQty(3, 100)}},
		"itemB": {Customizations: []Customization{plainQty(1, 200)}},
	}

	delta := Diff(previous, next)

	for itemID, entry := range delta {
		if entry.NewQty != nil {
			t.Fatalf("%s: newQty set on a non-deleted entry", itemID)
		}
	}

	payload, err := json.Marshal(Diff(previous, Items{}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(payload), `"newQty":0`) {
		t.Fatalf("deleted entry payload missing newQty: %s", payload)
	}
}

func TestDiffIdempotentEmptyDelta(t *testing.T) {
	items := Items{
		"itemA": {Customizations: []Customization{
			{Variation: map[string]any{"size": "Large"}, Qty: 2, Price: 300},
		}},
		"itemB": {Customizations: []Customization{plainQty(1, 80)}},
	}

	if delta := Diff(items, items); len(delta) != 0 {
		t.Fatalf("diff(order, order) not empty: %+v", delta)
	}
}

// replay applies a delta onto a snapshot the way the kitchen would: qty +=
// qtyChange per matching customization, dropping items whose total hits zero.
func replay(snapshot Items, delta Delta) Items {
	result := snapshot.Clone()

	for itemID, entry := range delta {
		if entry.Deleted {
			delete(result, itemID)
			continue
		}

		line := result[itemID]
		if entry.Added {
			line = Line{Name: entry.Name}
		}

		for _, dc := range entry.Customizations {
			key := CanonicalKey(dc.Customization)
			matched := false
			for i, c := range line.Customizations {
				if CanonicalKey(c) == key {
					line.Customizations[i].Qty += dc.QtyChange
					matched = true
					break
				}
			}
			if !matched {
				added := dc.Customization.Clone()
				added.Qty = dc.QtyChange
				line.Customizations = append(line.Customizations, added)
			}
		}

		result[itemID] = line
	}

	return result
}

func TestDiffReplayReproducesNext(t *testing.T) {
	previous := Items{
		"itemA": {Customizations: []Customization{
			{Variation: map[string]any{"size": "Large"}, Qty: 2, Price: 300},
			{Variation: map[string]any{"size": "Small"}, Qty: 1, Price: 200},
		}},
		"itemB": {Customizations: []Customization{plainQty(4, 60)}},
	}
	next := Items{
		"itemA": {Customizations: []Customization{
			{Variation: map[string]any{"size": "Large"}, Qty: 5, Price: 300},
			{Variation: map[string]any{"size": "Small"}, Qty: 1, Price: 200},
		}},
		"itemC": {Name: "Masala Papad", Customizations: []Customization{plainQty(2, 40)}},
	}

	replayed := replay(previous, Diff(previous, next))

	if len(replayed) != len(next) {
		t.Fatalf("replay produced %d items, want %d", len(replayed), len(next))
	}
	for itemID, wantLine := range next {
		gotLine, ok := replayed[itemID]
		if !ok {
			t.Fatalf("replay missing item %s", itemID)
		}
		if gotLine.TotalQty() != wantLine.TotalQty() {
			t.Fatalf("item %s: replayed qty %d, want %d",
				itemID, gotLine.TotalQty(), wantLine.TotalQty())
		}
		for _, wc := range wantLine.Customizations {
			found := false
			for _, gc := range gotLine.Customizations {
				if CanonicalKey(gc) == CanonicalKey(wc) && gc.Qty == wc.Qty {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("item %s: customization %+v not reproduced", itemID, wc)
			}
		}
	}
}
