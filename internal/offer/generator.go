package offer

import (
	"math"
	"sort"

	"github.com/Noel-auki/order-engine/internal/menu"
)

const (
	minOfferQty  = 2
	maxOfferQty  = 4
	topOfferSlot = 3
)

// buildCourseOffers generates candidate offers for the given courses from the
// restaurant catalog. Items are grouped into price bands roughly 100 wide,
// nudged up to end in 9; each band yields one candidate per quantity between
// minOfferQty and maxOfferQty, discounted by the configured percentage.
func buildCourseOffers(
	catalog map[string]menu.Item,
	courses []string,
	discountPct float64,
) []Offer {

	p := discountPct / 100
	var offers []Offer

	for _, course := range courses {
		var courseItems []menu.Item
		for _, item := range catalog {
			if containsString(item.MealTypes, course) {
				courseItems = append(courseItems, item)
			}
		}
		if len(courseItems) == 0 {
			continue
		}

		sort.Slice(courseItems, func(i, j int) bool {
			return courseItems[i].Price < courseItems[j].Price
		})

		minPrice := courseItems[0].Price
		maxPrice := courseItems[len(courseItems)-1].Price

		currentMin := minPrice
		for currentMin <= maxPrice {
			currentMax := roundUpToEndingIn9(currentMin + 100)

			var banded []menu.Item
			for _, item := range courseItems {
				if item.Price >= currentMin && item.Price <= currentMax {
					banded = append(banded, item)
				}
			}

			if len(banded) > 0 {
				var sum float64
				for _, item := range banded {
					sum += item.Price
				}
				avgPrice := math.Floor(sum / float64(len(banded)))

				for qty := minOfferQty; qty <= maxOfferQty; qty++ {
					totalPrice := avgPrice * float64(qty)
					discount := math.Floor(totalPrice * p)

					items := make([]OfferItem, len(banded))
					for i, item := range banded {
						items[i] = OfferItem{
							ID:    item.ID,
							Name:  item.Name,
							Price: item.Price,
							Qty:   qty,
						}
					}

					offers = append(offers, Offer{
						Course:          course,
						Items:           items,
						PriceRange:      PriceRange{Min: currentMin, Max: currentMax},
						Qty:             qty,
						AvgPrice:        avgPrice,
						TotalPrice:      totalPrice,
						Discount:        discount,
						DiscountedPrice: totalPrice - discount,
						Active:          true,
					})
				}
			}

			currentMin = currentMax + 1
		}
	}

	return offers
}

// topOffersByDiscount sorts candidates by discount amount (highest first) and
// keeps the best three.
func topOffersByDiscount(offers []Offer) []Offer {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Discount > offers[j].Discount
	})
	if len(offers) > topOfferSlot {
		offers = offers[:topOfferSlot]
	}
	return offers
}

// roundUpToEndingIn9 nudges a price up to the nearest value whose last digit
// is 9, so band edges read like menu prices (199, 299, ...).
func roundUpToEndingIn9(price float64) float64 {
	if price <= 0 {
		return 0
	}
	whole := math.Ceil(price)
	lastDigit := math.Mod(whole, 10)
	if lastDigit == 9 {
		return whole
	}
	return whole + (9 - lastDigit)
}
