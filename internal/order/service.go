package order

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/Noel-auki/order-engine/internal/menu"
	"github.com/Noel-auki/order-engine/internal/restaurant"
)

const (
	OrderTypeGuest       = "guest"
	OrderTypePromotional = "promotional"
)

// ConfigSource yields the restaurant configuration the order flow depends on.
type ConfigSource interface {
	GetByID(ctx context.Context, restaurantID string) (*restaurant.Restaurant, error)
}

// OfferEngine is the offer side of a submission: record a promotional
// availment, or sweep ordinary submissions for offers they already satisfy.
// Only a promotional availment reports back; the sweep just retires offers.
type OfferEngine interface {
	Avail(ctx context.Context, restaurantID, tableID, orderID, offerID string, items Items) (fully, partially bool, err error)
	DeactivateMatched(ctx context.Context, restaurantID, tableID string, items Items) error
	DeactivateTable(ctx context.Context, restaurantID, tableID string) error
}

// Notifier delivers the submission delta to the kitchen and captains.
type Notifier interface {
	OrderUpdated(ctx context.Context, restaurantID, tableID, orderID string, delta Delta) error
}

// NameSource resolves menu item ids to display names for delta payloads.
type NameSource interface {
	Names(ctx context.Context, restaurantID string) (map[string]string, error)
}

// DetailSource batch-fetches menu details for the cart view.
type DetailSource interface {
	ItemsByIDs(ctx context.Context, ids []string) (map[string]menu.Item, error)
}

// BillRenderer produces the final bill document attached to a settled order.
type BillRenderer interface {
	Render(ctx context.Context, restaurantID string, o *Order) ([]byte, error)
}

// ReceiptArchiver stores the rendered receipt of a settled order.
type ReceiptArchiver interface {
	Archive(ctx context.Context, restaurantID, orderID string, receipt []byte) error
}

type Service struct {
	repo        Repository
	restaurants ConfigSource
	offers      OfferEngine
	notifier    Notifier
	names       NameSource
	details     DetailSource
	bills       BillRenderer
	receipts    ReceiptArchiver
}

func NewService(
	repo Repository,
	restaurants ConfigSource,
	offers OfferEngine,
	notifier Notifier,
	names NameSource,
	details DetailSource,
	bills BillRenderer,
	receipts ReceiptArchiver,
) *Service {
	return &Service{
		repo:        repo,
		restaurants: restaurants,
		offers:      offers,
		notifier:    notifier,
		names:       names,
		details:     details,
		bills:       bills,
		receipts:    receipts,
	}
}

// --------------------------------------------------
// Submit items
// --------------------------------------------------

type SubmitRequest struct {
	RestaurantID    string
	TableID         string
	Items           Items
	Instructions    []string
	OrderType       string
	SelectedOfferID string
	GuestCount      int

	// ForceNewOrder starts a fresh order even when the table already has
	// one. OrderID targets an explicit order instead of the table's active
	// one; the two are mutually exclusive.
	ForceNewOrder bool
	OrderID       string
}

type SubmitResult struct {
	Order *Order `json:"order"`
	Delta Delta  `json:"delta"`
}

// Submit merges the incoming items into the table's order (or starts one),
// computes the kitchen delta, dispatches notifications and settles offer
// bookkeeping. Open items are rewritten into synthetic menu entries before
// merging so they aggregate like everything else.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if req.RestaurantID == "" || req.TableID == "" {
		return nil, errors.New("missing restaurant or table id")
	}
	if len(req.Items) == 0 {
		return nil, errors.New("no items submitted")
	}
	if req.ForceNewOrder && req.OrderID != "" {
		return nil, errors.New("forceNewOrder and orderId are mutually exclusive")
	}

	cfg, err := s.restaurants.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	incoming := TransformOpenItems(req.Items, cfg.OpenItemPrefix)

	existing, err := s.findTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		o     *Order
		delta Delta
	)
	if existing == nil {
		o = &Order{
			ID:           uuid.NewString(),
			RestaurantID: req.RestaurantID,
			TableID:      req.TableID,
			Items:        incoming,
			Instructions: req.Instructions,
			GuestCount:   req.GuestCount,
			OrderType:    orderTypeOrDefault(req.OrderType),
			Active:       true,
		}
		delta = Diff(Items{}, incoming)
		if err := s.repo.Create(ctx, o); err != nil {
			return nil, err
		}
	} else {
		// The repository merges under a row lock so a concurrent
		// submission for the same table cannot drop these items.
		previous, updated, err := s.repo.MergeSubmit(ctx, existing.ID, incoming, req.Instructions)
		if err != nil {
			return nil, err
		}
		delta = Diff(previous, updated.Items)
		o = updated
	}

	s.attachNames(ctx, req.RestaurantID, delta)

	if len(delta) > 0 && s.notifier != nil {
		if err := s.notifier.OrderUpdated(ctx, req.RestaurantID, req.TableID, o.ID, delta); err != nil {
			log.Printf("order %s: notification dispatch failed: %v", o.ID, err)
		}
	}

	if s.offers != nil {
		if err := s.settleOffers(ctx, req, o); err != nil {
			return nil, err
		}
	}

	return &SubmitResult{Order: o, Delta: delta}, nil
}

func (s *Service) findTarget(ctx context.Context, req SubmitRequest) (*Order, error) {
	if req.OrderID != "" {
		return s.repo.GetByID(ctx, req.OrderID)
	}
	if req.ForceNewOrder {
		return nil, nil
	}
	existing, err := s.repo.ActiveByTable(ctx, req.RestaurantID, req.TableID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return existing, err
}

func (s *Service) settleOffers(ctx context.Context, req SubmitRequest, o *Order) error {
	if o.OrderType == OrderTypePromotional && req.SelectedOfferID != "" {
		fully, partially, err := s.offers.Avail(
			ctx, req.RestaurantID, req.TableID, o.ID, req.SelectedOfferID, o.Items)
		if err != nil {
			return err
		}
		if fully || partially {
			o.OfferAvailed = fully
			o.OfferPartiallyAvailed = partially
			o.PaymentThirdParty = false
		}
		return nil
	}
	// Ordinary submissions only sweep: matched offers are retired without
	// flagging the order.
	return s.offers.DeactivateMatched(ctx, req.RestaurantID, req.TableID, o.Items)
}

// attachNames fills delta entries that lack a display name from the menu.
// Best effort: an unreadable menu never blocks a submission.
func (s *Service) attachNames(ctx context.Context, restaurantID string, delta Delta) {
	if s.names == nil || len(delta) == 0 {
		return
	}
	names, err := s.names.Names(ctx, restaurantID)
	if err != nil {
		log.Printf("restaurant %s: menu names unavailable: %v", restaurantID, err)
		return
	}
	for itemID, entry := range delta {
		if entry.Name == "" {
			if name, ok := names[itemID]; ok {
				entry.Name = name
				delta[itemID] = entry
			}
		}
	}
}

func orderTypeOrDefault(t string) string {
	if t == "" {
		return OrderTypeGuest
	}
	return t
}

// --------------------------------------------------
// Staged (temp) orders
// --------------------------------------------------

// Stage merges items into the table's staged order, creating one if needed.
// Staged items never reach the kitchen until promoted.
func (s *Service) Stage(
	ctx context.Context,
	restaurantID, tableID string,
	items Items,
) (*TempOrder, error) {

	if len(items) == 0 {
		return nil, errors.New("no items submitted")
	}

	cfg, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	incoming := TransformOpenItems(items, cfg.OpenItemPrefix)

	existing, err := s.repo.TempByTable(ctx, restaurantID, tableID)
	if err != nil && !errors.Is(err, ErrTempNotFound) {
		return nil, err
	}

	if existing == nil {
		t := &TempOrder{
			ID:           uuid.NewString(),
			RestaurantID: restaurantID,
			TableID:      tableID,
			Items:        incoming,
		}
		if err := s.repo.CreateTemp(ctx, t); err != nil {
			return nil, err
		}
		return t, nil
	}

	existing.Items = Merge(existing.Items, incoming)
	if err := s.repo.UpdateTempItems(ctx, existing.ID, existing.Items); err != nil {
		return nil, err
	}
	return existing, nil
}

// ReplaceStaged overwrites the staged items wholesale, the edit-in-place path
// of the captain UI.
func (s *Service) ReplaceStaged(
	ctx context.Context,
	restaurantID, tableID string,
	items Items,
) (*TempOrder, error) {

	existing, err := s.repo.TempByTable(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	existing.Items = TransformOpenItems(items, cfg.OpenItemPrefix)
	if err := s.repo.UpdateTempItems(ctx, existing.ID, existing.Items); err != nil {
		return nil, err
	}
	return existing, nil
}

// CancelStaged discards the table's staged order.
func (s *Service) CancelStaged(ctx context.Context, restaurantID, tableID string) error {
	existing, err := s.repo.TempByTable(ctx, restaurantID, tableID)
	if err != nil {
		return err
	}
	return s.repo.DeleteTemp(ctx, existing.ID)
}

// Promote sends the staged items to the kitchen through the normal submit
// path, then discards the staged order.
func (s *Service) Promote(ctx context.Context, restaurantID, tableID string) (*SubmitResult, error) {
	staged, err := s.repo.TempByTable(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	result, err := s.Submit(ctx, SubmitRequest{
		RestaurantID: restaurantID,
		TableID:      tableID,
		Items:        staged.Items,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteTemp(ctx, staged.ID); err != nil {
		return nil, err
	}
	return result, nil
}

// --------------------------------------------------
// Table view
// --------------------------------------------------

// Combined returns the live and staged orders of a table together with their
// merged item view.
func (s *Service) Combined(ctx context.Context, restaurantID, tableID string) (*CombinedView, error) {
	view := &CombinedView{Combined: Items{}}

	o, err := s.repo.ActiveByTable(ctx, restaurantID, tableID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	t, err := s.repo.TempByTable(ctx, restaurantID, tableID)
	if err != nil && !errors.Is(err, ErrTempNotFound) {
		return nil, err
	}

	view.Order = o
	view.TempOrder = t

	if o != nil {
		view.Combined = o.Items.Clone()
	}
	if t != nil {
		view.Combined = Merge(view.Combined, t.Items)
	}
	view.Cart = s.cartLines(ctx, view.Combined)
	return view, nil
}

// cartLines flattens the combined items into presentation lines joined with
// their menu details. Open items have no catalog entry and fall back to the
// line's own name and customization price.
func (s *Service) cartLines(ctx context.Context, items Items) []menu.CartItem {
	if s.details == nil || len(items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	catalog, err := s.details.ItemsByIDs(ctx, ids)
	if err != nil {
		log.Printf("❌ Failed to fetch menu details for cart: %v", err)
		catalog = map[string]menu.Item{}
	}

	cart := make([]menu.CartItem, 0, len(items))
	for id, line := range items {
		qty := 0
		price := 0.0
		for _, cust := range line.Customizations {
			qty += cust.Qty
			price = cust.Price
		}

		ci := menu.CartItem{ID: id, Name: line.Name, Price: price, Qty: qty}
		if item, ok := catalog[id]; ok {
			ci.Name = item.Name
			ci.Description = item.Description
			ci.Price = item.Price
		}
		cart = append(cart, ci)
	}
	sort.Slice(cart, func(i, j int) bool { return cart[i].ID < cart[j].ID })
	return cart
}

// --------------------------------------------------
// Remove a customization
// --------------------------------------------------

// RemoveItem removes one customization (or the whole line when none remain)
// from a live order.
func (s *Service) RemoveItem(
	ctx context.Context,
	orderID, itemID, variationID string,
	addonGroups []string,
) (*Order, error) {

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	line, ok := o.Items[itemID]
	if !ok {
		return nil, errors.New("item not in order")
	}

	updated, empty := RemoveCustomization(line, variationID, addonGroups)
	if len(updated.Customizations) == len(line.Customizations) {
		return nil, errors.New("no matching customization")
	}

	if empty {
		delete(o.Items, itemID)
	} else {
		o.Items[itemID] = updated
	}

	if err := s.repo.UpdateItems(ctx, o.ID, o.Items, o.Instructions); err != nil {
		return nil, err
	}
	return o, nil
}

// --------------------------------------------------
// Instructions, guest count, service charge
// --------------------------------------------------

func (s *Service) AppendInstruction(ctx context.Context, orderID, instruction string) (*Order, error) {
	if instruction == "" {
		return nil, errors.New("empty instruction")
	}
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Instructions = append(o.Instructions, instruction)
	if err := s.repo.UpdateItems(ctx, o.ID, o.Items, o.Instructions); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) SetGuestCount(ctx context.Context, orderID string, count int) error {
	if count < 0 {
		return errors.New("guest count must not be negative")
	}
	return s.repo.SetGuestCount(ctx, orderID, count)
}

func (s *Service) WaiveServiceCharge(ctx context.Context, orderID string, waived bool) error {
	return s.repo.SetServiceChargeWaived(ctx, orderID, waived)
}

// --------------------------------------------------
// Settlement
// --------------------------------------------------

// Complete settles the table's live order: the final bill is rendered, the
// order is archived with its invoice number, remaining table offers are
// retired and the receipt is shipped to the archive. Receipt upload is best
// effort; the settlement itself has already committed.
func (s *Service) Complete(ctx context.Context, restaurantID, tableID string) (*CompletedOrder, error) {
	o, err := s.repo.ActiveByTable(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	var bill []byte
	if s.bills != nil {
		bill, err = s.bills.Render(ctx, restaurantID, o)
		if err != nil {
			return nil, err
		}
	}

	completed, err := s.repo.Complete(ctx, restaurantID, tableID, bill)
	if err != nil {
		return nil, err
	}

	if s.offers != nil {
		if err := s.offers.DeactivateTable(ctx, restaurantID, tableID); err != nil {
			log.Printf("table %s: offer deactivation failed: %v", tableID, err)
		}
	}
	if s.receipts != nil && len(bill) > 0 {
		if err := s.receipts.Archive(ctx, restaurantID, completed.OrderID, bill); err != nil {
			log.Printf("order %s: receipt archive failed: %v", completed.OrderID, err)
		}
	}

	return completed, nil
}
