package order

import "testing"

func plainQty(qty int, price float64) Customization {
	return Customization{Qty: qty, Price: price}
}

func TestMergeSumsMatchingCustomizations(t *testing.T) {
	base := Items{
		"itemA": {Customizations: []Customization{plainQty(2, 250)}},
	}
	incoming := Items{
		"itemA": {Customizations: []Customization{plainQty(1, 250)}},
	}

	merged := Merge(base, incoming)

	if got := merged["itemA"].TotalQty(); got != 3 {
		t.Fatalf("expected qty 3, got %d", got)
	}
	if got := len(merged["itemA"].Customizations); got != 1 {
		t.Fatalf("expected a single merged customization, got %d", got)
	}
}

func TestMergeAppendsNewCustomization(t *testing.T) {
	base := Items{
		"itemA": {Customizations: []Customization{
			{Variation: map[string]any{"size": "Large"}, Qty: 1, Price: 300},
		}},
	}
	incoming := Items{
		"itemA": {Customizations: []Customization{
			{Variation: map[string]any{"size": "Small"}, Qty: 2, Price: 200},
		}},
	}

	merged := Merge(base, incoming)

	if got := len(merged["itemA"].Customizations); got != 2 {
		t.Fatalf("expected 2 customizations, got %d", got)
	}
	if got := merged["itemA"].TotalQty(); got != 3 {
		t.Fatalf("expected total qty 3, got %d", got)
	}
}

func TestMergeInsertsUnknownItemsVerbatim(t *testing.T) {
	base := Items{}
	incoming := Items{
		"open_123": {Name: "Extra Lemon", Customizations: []Customization{plainQty(1, 10)}},
	}

	merged := Merge(base, incoming)

	if merged["open_123"].Name != "Extra Lemon" {
		t.Fatalf("inline name lost on insert: %+v", merged["open_123"])
	}
}

func TestMergeDoesNotMutateBase(t *testing.T) {
	base := Items{
		"itemA": {Customizations: []Customization{
			{Variation: map[string]any{"size": "Large"}, Qty: 2, Price: 300},
		}},
	}
	incoming := Items{
		"itemA": {Customizations: []Customization{
			{Variation: map[string]any{"size": "Large"}, Qty: 5, Price: 300},
		}},
		"itemB": {Customizations: []Customization{plainQty(1, 50)}},
	}

	Merge(base, incoming)

	if got := base["itemA"].Customizations[0].Qty; got != 2 {
		t.Fatalf("base order mutated: qty %d", got)
	}
	if _, leaked := base["itemB"]; leaked {
		t.Fatalf("incoming item leaked into base")
	}
}

func TestMergeAssociativeOnQuantity(t *testing.T) {
	// merge(merge(base,A),B) must equal merge(base, merge(A,B)) on totals.
	base := Items{"itemA": {Customizations: []Customization{plainQty(2, 100)}}}
	subA := Items{"itemA": {Customizations: []Customization{plainQty(3, 100)}}}
	subB := Items{"itemA": {Customizations: []Customization{plainQty(1, 100)}}}

	sequential := Merge(Merge(base, subA), subB)
	combined := Merge(base, Merge(subA, subB))

	if sequential["itemA"].TotalQty() != combined["itemA"].TotalQty() {
		t.Fatalf("sequential=%d combined=%d",
			sequential["itemA"].TotalQty(), combined["itemA"].TotalQty())
	}
	if got := sequential["itemA"].TotalQty(); got != 6 {
		t.Fatalf("expected total 6, got %d", got)
	}
}

func TestMergeKeepsZeroQuantity(t *testing.T) {
	// Zero is a valid transient state; merge never auto-removes.
	base := Items{"itemA": {Customizations: []Customization{plainQty(0, 100)}}}
	merged := Merge(base, Items{})

	if _, ok := merged["itemA"]; !ok {
		t.Fatalf("zero-qty line dropped by merge")
	}
}
