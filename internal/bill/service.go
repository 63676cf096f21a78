package bill

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Noel-auki/order-engine/internal/order"
	"github.com/Noel-auki/order-engine/internal/restaurant"
)

// ConfigSource yields the restaurant billing configuration.
type ConfigSource interface {
	GetByID(ctx context.Context, restaurantID string) (*restaurant.Restaurant, error)
}

// OrderSource yields the table's live order.
type OrderSource interface {
	ActiveByTable(ctx context.Context, restaurantID, tableID string) (*order.Order, error)
}

// InvoiceSource claims invoice sequence numbers for printed bills.
type InvoiceSource interface {
	NextInvoiceNumber(ctx context.Context, restaurantID string, year int) (int, error)
}

// ExternalSource fetches the bill a third-party POS has computed for the
// table. Integration internals stay behind this boundary; a nil source means
// the restaurant settles bills natively.
type ExternalSource interface {
	Breakdown(ctx context.Context, restaurantID, tableID string) (*ExternalBreakdown, error)
}

type Service struct {
	calc        *Calculator
	orders      OrderSource
	restaurants ConfigSource
	invoices    InvoiceSource
	external    ExternalSource
}

func NewService(
	calc *Calculator,
	orders OrderSource,
	restaurants ConfigSource,
	invoices InvoiceSource,
	external ExternalSource,
) *Service {
	return &Service{
		calc:        calc,
		orders:      orders,
		restaurants: restaurants,
		invoices:    invoices,
		external:    external,
	}
}

// --------------------------------------------------
// Current bill
// --------------------------------------------------
// Current resolves the table's bill by provenance: when the restaurant runs
// on an external POS and that POS has a bill for the table, its numbers are
// normalized into the canonical shape; otherwise the bill is computed from
// the live order. Either way the caller sees one Breakdown.
func (s *Service) Current(ctx context.Context, restaurantID, tableID string) (Breakdown, error) {
	cfg, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return Breakdown{}, err
	}

	o, err := s.orders.ActiveByTable(ctx, restaurantID, tableID)
	if err != nil {
		return Breakdown{}, err
	}

	if cfg.ExternalPOSEnabled && s.external != nil {
		ext, err := s.external.Breakdown(ctx, restaurantID, tableID)
		if err == nil && ext != nil {
			return NormalizeExternal(*ext, cfg.RoundingType), nil
		}
		// Fall back to the native calculation when the POS has nothing.
	}

	return s.compute(cfg, o), nil
}

func (s *Service) compute(cfg *restaurant.Restaurant, o *order.Order) Breakdown {
	b := s.calc.Compute(o.Items, Config{
		ServiceChargeEnabled: cfg.ServiceChargeEnabled && !o.ServiceChargeWaived,
		ServiceChargePercent: cfg.ServiceChargePercent,
		GSTIncluded:          cfg.GSTIncluded,
		HouseDiscountEnabled: cfg.HouseDiscountEnabled,
		RoundingType:         cfg.RoundingType,
	})
	if o.ServiceChargeWaived && cfg.ServiceChargeEnabled {
		// Show the guest what was waived, not just a zero line.
		waived := Subtotal(o.Items) * cfg.ServiceChargePercent / 100
		b.ServiceChargeWaivedOff = round2(waived)
	}
	return b
}

// --------------------------------------------------
// Render for settlement
// --------------------------------------------------

// Receipt is the archived bill document attached to a completed order.
type Receipt struct {
	OrderID      string      `json:"orderId"`
	RestaurantID string      `json:"restaurantId"`
	TableID      string      `json:"tableId"`
	Items        order.Items `json:"items"`
	Breakdown    Breakdown   `json:"breakdown"`
	GeneratedAt  time.Time   `json:"generatedAt"`
}

// Render produces the receipt document for a settling order. It satisfies the
// order service's renderer dependency.
func (s *Service) Render(ctx context.Context, restaurantID string, o *order.Order) ([]byte, error) {
	cfg, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Receipt{
		OrderID:      o.ID,
		RestaurantID: o.RestaurantID,
		TableID:      o.TableID,
		Items:        o.Items,
		Breakdown:    s.compute(cfg, o),
		GeneratedAt:  time.Now(),
	})
}

// --------------------------------------------------
// Print
// --------------------------------------------------

// PrintedBill is the response of a print request: the bill plus the invoice
// number claimed for it.
type PrintedBill struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	Breakdown     Breakdown `json:"breakdown"`
}

// Print claims the next invoice number for the restaurant's year and returns
// it with the current bill.
func (s *Service) Print(ctx context.Context, restaurantID, tableID string) (*PrintedBill, error) {
	b, err := s.Current(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	year := time.Now().Year()
	seq, err := s.invoices.NextInvoiceNumber(ctx, restaurantID, year)
	if err != nil {
		return nil, err
	}

	return &PrintedBill{
		InvoiceNumber: fmt.Sprintf("INV-%d-%04d", year, seq),
		Breakdown:     b,
	}, nil
}
