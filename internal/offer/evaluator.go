package offer

import (
	"fmt"

	"github.com/Noel-auki/order-engine/internal/menu"
	"github.com/Noel-auki/order-engine/internal/order"
)

// basketItem is one aggregated (itemID, variationID) tally in the cart.
type basketItem struct {
	ID    string
	Qty   int
	Price float64
}

// courseItemsInCart restricts the order to items that appear in the course's
// applicable offer basket AND whose menu entry lists the course among its
// meal types, then sums quantities, merging identical (itemID, variationID)
// pairs into one running total.
func courseItemsInCart(
	items order.Items,
	offers []Offer,
	catalog map[string]menu.Item,
	course string,
) (int, []basketItem) {

	var applicable *Offer
	for i := range offers {
		if offers[i].Course == course {
			applicable = &offers[i]
			break
		}
	}
	if applicable == nil || len(items) == 0 {
		return 0, nil
	}

	inBasket := make(map[string]bool, len(applicable.Items))
	for _, item := range applicable.Items {
		inBasket[item.ID] = true
	}

	count := 0
	var basket []basketItem

	for itemID, line := range items {
		if !inBasket[itemID] {
			continue
		}
		catalogItem, known := catalog[itemID]
		if !known || !containsString(catalogItem.MealTypes, course) {
			continue
		}

		for _, c := range line.Customizations {
			count += c.Qty

			id := itemID
			price := catalogItem.Price
			if len(c.Variation) > 0 {
				if variationID, ok := c.Variation["id"]; ok {
					id = fmt.Sprintf("%s||%v", itemID, variationID)
				}
				if p, ok := c.Variation["price"].(float64); ok {
					price = p
				}
			}

			merged := false
			for i := range basket {
				if basket[i].ID == id {
					basket[i].Qty += c.Qty
					merged = true
					break
				}
			}
			if !merged {
				basket = append(basket, basketItem{ID: id, Qty: c.Qty, Price: price})
			}
		}
	}

	return count, basket
}

// Evaluate determines whether the selected offer is fully, partially or not
// satisfied by the current merged order. An unknown selected offer id means
// "not availed", never an error: stale client-side selections are expected.
func Evaluate(
	items order.Items,
	offers []Offer,
	selectedOfferID string,
	catalog map[string]menu.Item,
) Outcome {

	var selected *Offer
	for i := range offers {
		if offers[i].ID == selectedOfferID {
			selected = &offers[i]
			break
		}
	}
	if selected == nil {
		return Outcome{}
	}

	count, _ := courseItemsInCart(items, offers, catalog, selected.Course)
	if count == 0 {
		return Outcome{}
	}

	required := selected.RequiredQty()
	return Outcome{
		FullyAvailed:     count >= required,
		PartiallyAvailed: count > 0 && count < required,
	}
}

// EvaluateAll applies the per-offer evaluation to every active offer. Used on
// submissions outside the promotional payment path to find offers whose
// basket requirement is already (even partially) met.
func EvaluateAll(
	items order.Items,
	offers []Offer,
	catalog map[string]menu.Item,
) map[string]Outcome {

	outcomes := make(map[string]Outcome, len(offers))
	for _, o := range offers {
		count, _ := courseItemsInCart(items, offers, catalog, o.Course)
		if count == 0 {
			outcomes[o.ID] = Outcome{}
			continue
		}
		required := o.RequiredQty()
		outcomes[o.ID] = Outcome{
			FullyAvailed:     count >= required,
			PartiallyAvailed: count > 0 && count < required,
		}
	}
	return outcomes
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
