package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Noel-auki/order-engine/internal/menu"
	"github.com/Noel-auki/order-engine/internal/restaurant"
)

// --------------------------------------------------
// In-memory fakes
// --------------------------------------------------

type memoryRepo struct {
	mu        sync.Mutex
	orders    map[string]*Order
	temps     map[string]*TempOrder
	completed []*CompletedOrder
	invoices  map[string]int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		orders:   make(map[string]*Order),
		temps:    make(map[string]*TempOrder),
		invoices: make(map[string]int),
	}
}

func (m *memoryRepo) ActiveByTable(_ context.Context, restaurantID, tableID string) (*Order, error) {
	for _, o := range m.orders {
		if o.Active && o.RestaurantID == restaurantID && o.TableID == tableID {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRepo) GetByID(_ context.Context, orderID string) (*Order, error) {
	o, ok := m.orders[orderID]
	if !ok || !o.Active {
		return nil, ErrNotFound
	}
	return o, nil
}

func (m *memoryRepo) Create(_ context.Context, o *Order) error {
	m.orders[o.ID] = o
	return nil
}

func (m *memoryRepo) UpdateItems(_ context.Context, orderID string, items Items, instructions []string) error {
	o, ok := m.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Items = items
	o.Instructions = instructions
	return nil
}

// MergeSubmit serializes like the row lock in the real repository: the read,
// merge and write happen under one lock so concurrent submissions cannot
// drop each other's items.
func (m *memoryRepo) MergeSubmit(_ context.Context, orderID string, incoming Items, instructions []string) (Items, *Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[orderID]
	if !ok || !o.Active {
		return nil, nil, ErrNotFound
	}
	previous := o.Items
	o.Items = Merge(previous, incoming)
	o.Instructions = append(o.Instructions, instructions...)
	return previous, o, nil
}

func (m *memoryRepo) SetGuestCount(_ context.Context, orderID string, count int) error {
	o, ok := m.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.GuestCount = count
	return nil
}

func (m *memoryRepo) SetServiceChargeWaived(_ context.Context, orderID string, waived bool) error {
	o, ok := m.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.ServiceChargeWaived = waived
	return nil
}

func (m *memoryRepo) TempByTable(_ context.Context, restaurantID, tableID string) (*TempOrder, error) {
	for _, t := range m.temps {
		if t.RestaurantID == restaurantID && t.TableID == tableID {
			return t, nil
		}
	}
	return nil, ErrTempNotFound
}

func (m *memoryRepo) CreateTemp(_ context.Context, t *TempOrder) error {
	m.temps[t.ID] = t
	return nil
}

func (m *memoryRepo) UpdateTempItems(_ context.Context, tempID string, items Items) error {
	t, ok := m.temps[tempID]
	if !ok {
		return ErrTempNotFound
	}
	t.Items = items
	return nil
}

func (m *memoryRepo) DeleteTemp(_ context.Context, tempID string) error {
	if _, ok := m.temps[tempID]; !ok {
		return ErrTempNotFound
	}
	delete(m.temps, tempID)
	return nil
}

func (m *memoryRepo) Complete(ctx context.Context, restaurantID, tableID string, bill []byte) (*CompletedOrder, error) {
	o, err := m.ActiveByTable(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}
	m.invoices[restaurantID]++
	completed := &CompletedOrder{
		ID:            "completed-" + o.ID,
		OrderID:       o.ID,
		RestaurantID:  o.RestaurantID,
		TableID:       o.TableID,
		Items:         o.Items,
		InvoiceNumber: fmt.Sprintf("INV-%04d", m.invoices[restaurantID]),
		Bill:          bill,
	}
	m.completed = append(m.completed, completed)
	delete(m.orders, o.ID)
	for id, t := range m.temps {
		if t.RestaurantID == restaurantID && t.TableID == tableID {
			delete(m.temps, id)
		}
	}
	return completed, nil
}

func (m *memoryRepo) NextInvoiceNumber(_ context.Context, restaurantID string, _ int) (int, error) {
	m.invoices[restaurantID]++
	return m.invoices[restaurantID], nil
}

type staticConfig restaurant.Restaurant

func (c staticConfig) GetByID(_ context.Context, _ string) (*restaurant.Restaurant, error) {
	r := restaurant.Restaurant(c)
	return &r, nil
}

type recordingOffers struct {
	availCalls   []string
	sweepCalls   []string
	tablesCalled []string
	fully        bool
	partially    bool
}

func (r *recordingOffers) Avail(_ context.Context, _, _, orderID, offerID string, _ Items) (bool, bool, error) {
	r.availCalls = append(r.availCalls, orderID+":"+offerID)
	return r.fully, r.partially, nil
}

func (r *recordingOffers) DeactivateMatched(_ context.Context, _, tableID string, _ Items) error {
	r.sweepCalls = append(r.sweepCalls, tableID)
	return nil
}

func (r *recordingOffers) DeactivateTable(_ context.Context, _, tableID string) error {
	r.tablesCalled = append(r.tablesCalled, tableID)
	return nil
}

type recordingNotifier struct {
	deltas []Delta
}

func (n *recordingNotifier) OrderUpdated(_ context.Context, _, _, _ string, delta Delta) error {
	n.deltas = append(n.deltas, delta)
	return nil
}

type staticNames map[string]string

func (n staticNames) Names(_ context.Context, _ string) (map[string]string, error) {
	return n, nil
}

type staticDetails map[string]menu.Item

func (d staticDetails) ItemsByIDs(_ context.Context, ids []string) (map[string]menu.Item, error) {
	out := map[string]menu.Item{}
	for _, id := range ids {
		if item, ok := d[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

type staticBill []byte

func (b staticBill) Render(_ context.Context, _ string, _ *Order) ([]byte, error) {
	return b, nil
}

type recordingArchiver struct {
	keys []string
}

func (a *recordingArchiver) Archive(_ context.Context, restaurantID, orderID string, _ []byte) error {
	a.keys = append(a.keys, restaurantID+"/"+orderID)
	return nil
}

type serviceHarness struct {
	svc      *Service
	repo     *memoryRepo
	offers   *recordingOffers
	notifier *recordingNotifier
	archiver *recordingArchiver
}

func newHarness() *serviceHarness {
	h := &serviceHarness{
		repo:     newMemoryRepo(),
		offers:   &recordingOffers{},
		notifier: &recordingNotifier{},
		archiver: &recordingArchiver{},
	}
	cfg := staticConfig{ID: "rest1", OpenItemPrefix: "open"}
	h.svc = NewService(
		h.repo,
		cfg,
		h.offers,
		h.notifier,
		staticNames{"item1": "Paneer Tikka"},
		staticDetails{"item1": {ID: "item1", Name: "Paneer Tikka", Price: 250}},
		staticBill(`{"total":100}`),
		h.archiver,
	)
	return h
}

func submitItems(qty int) Items {
	return Items{
		"item1": {Customizations: []Customization{plainQty(qty, 250)}},
	}
}

// --------------------------------------------------
// Submit
// --------------------------------------------------

func TestSubmitCreatesOrderForIdleTable(t *testing.T) {
	h := newHarness()

	result, err := h.svc.Submit(context.Background(), SubmitRequest{
		RestaurantID: "rest1",
		TableID:      "t1",
		Items:        submitItems(2),
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Order.ID == "" || !result.Order.Active {
		t.Fatalf("expected a live order, got %+v", result.Order)
	}
	if result.Order.OrderType != OrderTypeGuest {
		t.Fatalf("order type = %q", result.Order.OrderType)
	}

	entry, ok := result.Delta["item1"]
	if !ok || !entry.Added {
		t.Fatalf("delta should report item1 added: %+v", result.Delta)
	}
	if entry.Name != "Paneer Tikka" {
		t.Fatalf("delta name = %q, want menu name attached", entry.Name)
	}
	if len(h.notifier.deltas) != 1 {
		t.Fatalf("expected one notification, got %d", len(h.notifier.deltas))
	}
}

func TestSubmitMergesIntoActiveOrder(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	first, err := h.svc.Submit(ctx, SubmitRequest{
		RestaurantID: "rest1", TableID: "t1", Items: submitItems(2),
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.svc.Submit(ctx, SubmitRequest{
		RestaurantID: "rest1", TableID: "t1", Items: submitItems(1),
	})
	if err != nil {
		t.Fatal(err)
	}

	if second.Order.ID != first.Order.ID {
		t.Fatal("second submission must reuse the table's order")
	}
	if got := second.Order.Items["item1"].TotalQty(); got != 3 {
		t.Fatalf("merged qty = %d, want 3", got)
	}
	entry := second.Delta["item1"]
	if entry.Added || len(entry.Customizations) != 1 || entry.Customizations[0].QtyChange != 1 {
		t.Fatalf("delta should report a +1 change: %+v", entry)
	}
}

func TestSubmitForceNewOrder(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	first, _ := h.svc.Submit(ctx, SubmitRequest{
		RestaurantID: "rest1", TableID: "t1", Items: submitItems(2),
	})
	second, err := h.svc.Submit(ctx, SubmitRequest{
		RestaurantID: "rest1", TableID: "t1", Items: submitItems(1), ForceNewOrder: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if second.Order.ID == first.Order.ID {
		t.Fatal("forceNewOrder must not merge into the existing order")
	}
	if len(h.repo.orders) != 2 {
		t.Fatalf("expected 2 live orders, got %d", len(h.repo.orders))
	}
}

func TestSubmitTransformsOpenItems(t *testing.T) {
	h := newHarness()

	result, err := h.svc.Submit(context.Background(), SubmitRequest{
		RestaurantID: "rest1",
		TableID:      "t1",
		Items: Items{
			"open_1": {
				Name:           "Chef's Special!",
				Customizations: []Customization{plainQty(1, 150)},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "open_chefsSpecial_150"
	if _, ok := result.Order.Items[want]; !ok {
		t.Fatalf("open item not rewritten, keys: %v", keysOf(result.Order.Items))
	}
}

func TestSubmitPromotionalAvailsSelectedOffer(t *testing.T) {
	h := newHarness()
	h.offers.fully = true

	result, err := h.svc.Submit(context.Background(), SubmitRequest{
		RestaurantID:    "rest1",
		TableID:         "t1",
		Items:           submitItems(3),
		OrderType:       OrderTypePromotional,
		SelectedOfferID: "offer1",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(h.offers.availCalls) != 1 {
		t.Fatalf("expected one avail call, got %v", h.offers.availCalls)
	}
	if len(h.offers.sweepCalls) != 0 {
		t.Fatal("promotional path must not run the sweep")
	}
	if !result.Order.OfferAvailed || result.Order.PaymentThirdParty {
		t.Fatalf("order flags not settled: %+v", result.Order)
	}
}

func TestSubmitOrdinarySweepsOffers(t *testing.T) {
	h := newHarness()
	h.offers.fully = true

	result, err := h.svc.Submit(context.Background(), SubmitRequest{
		RestaurantID: "rest1", TableID: "t1", Items: submitItems(1),
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(h.offers.sweepCalls) != 1 || len(h.offers.availCalls) != 0 {
		t.Fatalf("expected only the sweep: avail=%v sweep=%v",
			h.offers.availCalls, h.offers.sweepCalls)
	}
	// The sweep retires offers; it never marks the order as availed.
	if result.Order.OfferAvailed || result.Order.OfferPartiallyAvailed {
		t.Fatalf("sweep must not flag the order: %+v", result.Order)
	}
}

func TestSubmitConcurrentSameTableLosesNothing(t *testing.T) {
	repo := newMemoryRepo()
	cfg := staticConfig{ID: "rest1", OpenItemPrefix: "open"}
	svc := NewService(repo, cfg, nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	result, err := svc.Submit(ctx, SubmitRequest{
		RestaurantID: "rest1", TableID: "t1", Items: submitItems(1),
	})
	if err != nil {
		t.Fatal(err)
	}

	const submissions = 8
	var wg sync.WaitGroup
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(ctx, SubmitRequest{
				RestaurantID: "rest1", TableID: "t1", Items: submitItems(1),
			}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	final, err := repo.GetByID(ctx, result.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := final.Items["item1"].TotalQty(); got != submissions+1 {
		t.Fatalf("dropped submissions: qty = %d, want %d", got, submissions+1)
	}
}

func TestSubmitRejectsConflictingTargets(t *testing.T) {
	h := newHarness()

	_, err := h.svc.Submit(context.Background(), SubmitRequest{
		RestaurantID:  "rest1",
		TableID:       "t1",
		Items:         submitItems(1),
		ForceNewOrder: true,
		OrderID:       "some-order",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
}

// --------------------------------------------------
// Staged orders
// --------------------------------------------------

func TestStageThenPromote(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	if _, err := h.svc.Stage(ctx, "rest1", "t1", submitItems(2)); err != nil {
		t.Fatal(err)
	}
	if _, err := h.svc.Stage(ctx, "rest1", "t1", submitItems(1)); err != nil {
		t.Fatal(err)
	}
	if len(h.repo.temps) != 1 {
		t.Fatalf("staging twice must reuse the temp order, got %d", len(h.repo.temps))
	}
	if len(h.notifier.deltas) != 0 {
		t.Fatal("staged items must not notify the kitchen")
	}

	result, err := h.svc.Promote(ctx, "rest1", "t1")
	if err != nil {
		t.Fatal(err)
	}
	if got := result.Order.Items["item1"].TotalQty(); got != 3 {
		t.Fatalf("promoted qty = %d, want 3", got)
	}
	if len(h.repo.temps) != 0 {
		t.Fatal("promotion must discard the staged order")
	}
	if len(h.notifier.deltas) != 1 {
		t.Fatal("promotion must notify the kitchen")
	}
}

func TestCancelStaged(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	if _, err := h.svc.Stage(ctx, "rest1", "t1", submitItems(1)); err != nil {
		t.Fatal(err)
	}
	if err := h.svc.CancelStaged(ctx, "rest1", "t1"); err != nil {
		t.Fatal(err)
	}
	if err := h.svc.CancelStaged(ctx, "rest1", "t1"); !errors.Is(err, ErrTempNotFound) {
		t.Fatalf("expected ErrTempNotFound, got %v", err)
	}
}

// --------------------------------------------------
// Combined view
// --------------------------------------------------

func TestCombinedMergesLiveAndStaged(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	if _, err := h.svc.Submit(ctx, SubmitRequest{
		RestaurantID: "rest1", TableID: "t1", Items: submitItems(2),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.svc.Stage(ctx, "rest1", "t1", submitItems(1)); err != nil {
		t.Fatal(err)
	}

	view, err := h.svc.Combined(ctx, "rest1", "t1")
	if err != nil {
		t.Fatal(err)
	}
	if view.Order == nil || view.TempOrder == nil {
		t.Fatalf("expected both orders in view: %+v", view)
	}
	if got := view.Combined["item1"].TotalQty(); got != 3 {
		t.Fatalf("combined qty = %d, want 3", got)
	}
	// The view is a snapshot; the live order must be untouched.
	if got := view.Order.Items["item1"].TotalQty(); got != 2 {
		t.Fatalf("live order mutated by view: qty = %d", got)
	}

	if len(view.Cart) != 1 {
		t.Fatalf("cart lines = %d, want 1", len(view.Cart))
	}
	line := view.Cart[0]
	if line.Name != "Paneer Tikka" || line.Qty != 3 || line.Price != 250 {
		t.Fatalf("unexpected cart line: %+v", line)
	}
}

func TestCombinedEmptyTable(t *testing.T) {
	h := newHarness()

	view, err := h.svc.Combined(context.Background(), "rest1", "t9")
	if err != nil {
		t.Fatal(err)
	}
	if view.Order != nil || view.TempOrder != nil || len(view.Combined) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

// --------------------------------------------------
// Remove a customization
// --------------------------------------------------

func TestRemoveItemDropsEmptyLine(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	result, err := h.svc.Submit(ctx, SubmitRequest{
		RestaurantID: "rest1", TableID: "t1", Items: submitItems(2),
	})
	if err != nil {
		t.Fatal(err)
	}

	o, err := h.svc.RemoveItem(ctx, result.Order.ID, "item1", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := o.Items["item1"]; ok {
		t.Fatal("line with no customizations left must be dropped")
	}
}

// --------------------------------------------------
// Settlement
// --------------------------------------------------

func TestCompleteArchivesAndRetiresOffers(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	if _, err := h.svc.Submit(ctx, SubmitRequest{
		RestaurantID: "rest1", TableID: "t1", Items: submitItems(2),
	}); err != nil {
		t.Fatal(err)
	}

	completed, err := h.svc.Complete(ctx, "rest1", "t1")
	if err != nil {
		t.Fatal(err)
	}

	if completed.InvoiceNumber == "" {
		t.Fatal("completed order must carry an invoice number")
	}
	if string(completed.Bill) != `{"total":100}` {
		t.Fatalf("bill = %s", completed.Bill)
	}
	if len(h.repo.orders) != 0 {
		t.Fatal("live order must be cleared")
	}
	if len(h.offers.tablesCalled) != 1 || h.offers.tablesCalled[0] != "t1" {
		t.Fatalf("table offers not retired: %v", h.offers.tablesCalled)
	}
	if len(h.archiver.keys) != 1 || h.archiver.keys[0] != "rest1/"+completed.OrderID {
		t.Fatalf("receipt not archived: %v", h.archiver.keys)
	}
}

func TestCompleteWithoutActiveOrder(t *testing.T) {
	h := newHarness()

	if _, err := h.svc.Complete(context.Background(), "rest1", "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
