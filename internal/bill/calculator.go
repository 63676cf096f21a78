package bill

import (
	"math"

	"github.com/Noel-auki/order-engine/internal/order"
)

// DiscountStrategy turns a pre-discount total into a discounted total plus
// the discount amount taken off. Injected so discount math can evolve without
// touching the calculator.
type DiscountStrategy interface {
	Apply(total float64) (discountedTotal, discount float64)
}

// IdentityDiscount applies no discount.
type IdentityDiscount struct{}

func (IdentityDiscount) Apply(total float64) (float64, float64) {
	return total, 0
}

// Calculator derives bill breakdowns from merged orders.
type Calculator struct {
	discount DiscountStrategy
}

func NewCalculator(discount DiscountStrategy) *Calculator {
	if discount == nil {
		discount = IdentityDiscount{}
	}
	return &Calculator{discount: discount}
}

// Subtotal is Σ(price × qty) over every customization in the order.
func Subtotal(items order.Items) float64 {
	var subtotal float64
	for _, line := range items {
		for _, c := range line.Customizations {
			subtotal += c.Price * float64(c.Qty)
		}
	}
	return subtotal
}

// RoundOff applies a rounding policy to a value and reports the absolute
// magnitude of the adjustment. An unknown or "default" policy is a no-op.
func RoundOff(value float64, roundingType string) (rounded, roundedOff float64) {
	switch roundingType {
	case RoundUp:
		rounded = math.Ceil(value)
	case RoundDown:
		rounded = math.Floor(value)
	case RoundNearest:
		rounded = math.Round(value)
	default:
		return value, 0
	}
	return rounded, math.Abs(rounded - value)
}

// Compute derives the full breakdown from a merged order. Accumulation runs
// in full precision; currency values are rounded to two decimals only at the
// return boundary. An empty order yields an all-zero breakdown.
func (calc *Calculator) Compute(items order.Items, cfg Config) Breakdown {
	if len(items) == 0 {
		return Breakdown{}
	}

	subtotal := Subtotal(items)

	var serviceCharge float64
	total := subtotal
	if cfg.ServiceChargeEnabled {
		serviceCharge = subtotal * (cfg.ServiceChargePercent / 100)
		total = subtotal + serviceCharge
	}

	var tax float64
	if !cfg.GSTIncluded {
		// 5% GST, conceptually split 2.5% CGST / 2.5% SGST.
		tax = total * 0.05
		total += tax
	}

	discountedTotal := total
	var houseDiscount float64
	if cfg.HouseDiscountEnabled {
		discountedTotal, houseDiscount = calc.discount.Apply(total)
	}

	var totalRoundOff, discountRoundOff float64
	if cfg.RoundingType != "" && cfg.RoundingType != RoundDefault {
		discountedTotal, discountRoundOff = RoundOff(discountedTotal, cfg.RoundingType)
		total, totalRoundOff = RoundOff(total, cfg.RoundingType)
	}

	return Breakdown{
		Subtotal:         round2(subtotal),
		ServiceCharge:    round2(serviceCharge),
		Tax:              round2(tax),
		Total:            round2(total),
		TotalRoundOff:    totalRoundOff,
		DiscountRoundOff: discountRoundOff,
		HouseDiscount:    round2(houseDiscount),
		DiscountedTotal:  round2(discountedTotal),
		Discount:         0,
	}
}

// NormalizeExternal maps a third-party POS breakdown into the canonical shape,
// applying only the rounding step to its pre-combined discounted total.
func NormalizeExternal(data ExternalBreakdown, roundingType string) Breakdown {
	discountedTotal := round2(coalesce(data.CombinedTotal, data.DiscountedTotal, data.Total))
	var discountRoundOff float64
	if roundingType != "" && roundingType != RoundDefault {
		discountedTotal, discountRoundOff = RoundOff(discountedTotal, roundingType)
	}

	return Breakdown{
		Subtotal:               round2(coalesce(data.CombinedCorePrice, data.Subtotal)),
		ServiceCharge:          round2(coalesce(data.CombinedServiceCharge, data.ServiceCharge)),
		Tax:                    round2(coalesce(data.CombinedTax, data.Tax)),
		Discount:               round2(coalesce(data.CombinedDiscount)),
		TotalRoundOff:          round2(coalesce(data.CombinedRoundOff)),
		DiscountRoundOff:       discountRoundOff,
		Total:                  round2(coalesce(data.OriginalCombinedTotal, data.Total)),
		DiscountedTotal:        discountedTotal,
		HouseDiscount:          round2(coalesce(data.HouseDiscounts, data.HouseDiscount)),
		ServiceChargeWaivedOff: coalesce(data.ServiceChargeWaived),
	}
}

func coalesce(candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
