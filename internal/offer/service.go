package offer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Noel-auki/order-engine/internal/menu"
	"github.com/Noel-auki/order-engine/internal/order"
)

// housePayPercent is the flat house-pay discount issued alongside every batch
// of generated offers.
const housePayPercent = 12

// istZone pins generated discount validity windows to restaurant local time.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// CatalogSource is the slice of the menu the offer engine needs.
type CatalogSource interface {
	ItemsByRestaurant(ctx context.Context, restaurantID string) (map[string]menu.Item, error)
}

type Service struct {
	repo    Repository
	catalog CatalogSource
}

func NewService(repo Repository, catalog CatalogSource) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// --------------------------------------------------
// List active offers
// --------------------------------------------------
func (s *Service) ActiveOffers(
	ctx context.Context,
	restaurantID, tableID string,
) ([]Offer, error) {

	if restaurantID == "" || tableID == "" {
		return nil, errors.New("missing restaurant or table id")
	}
	return s.repo.ActiveByTable(ctx, restaurantID, tableID)
}

// --------------------------------------------------
// Avail a selected offer
// --------------------------------------------------
// Avail evaluates the guest's selected offer against the merged order and, if
// it is at least partially satisfied, records the outcome. A stale or
// unsatisfied selection returns a zero Outcome without touching anything.
func (s *Service) Avail(
	ctx context.Context,
	restaurantID, tableID, orderID, selectedOfferID string,
	items order.Items,
) (Outcome, error) {

	offers, err := s.repo.ActiveByTable(ctx, restaurantID, tableID)
	if err != nil {
		return Outcome{}, err
	}
	if len(offers) == 0 {
		return Outcome{}, nil
	}

	catalog, err := s.catalog.ItemsByRestaurant(ctx, restaurantID)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Evaluate(items, offers, selectedOfferID, catalog)
	if !outcome.Availed() {
		return outcome, nil
	}

	if err := s.repo.ApplyOutcome(ctx, restaurantID, tableID, orderID, selectedOfferID, outcome); err != nil {
		return Outcome{}, err
	}
	return outcome, nil
}

// --------------------------------------------------
// Sweep matched offers
// --------------------------------------------------
// DeactivateMatched runs after ordinary submissions: every active offer whose
// basket requirement is even partially met by the order is retired, so a
// guest cannot order through an offer's basket outside the promotional flow
// and still have it waiting. The order itself is never flagged here.
func (s *Service) DeactivateMatched(
	ctx context.Context,
	restaurantID, tableID string,
	items order.Items,
) error {

	offers, err := s.repo.ActiveByTable(ctx, restaurantID, tableID)
	if err != nil {
		return err
	}
	if len(offers) == 0 {
		return nil
	}

	catalog, err := s.catalog.ItemsByRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}

	outcomes := EvaluateAll(items, offers, catalog)
	for _, o := range offers {
		if !outcomes[o.ID].Availed() {
			continue
		}
		if err := s.repo.Deactivate(ctx, o.ID); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Generate offers for a table
// --------------------------------------------------
// GenerateDynamicOffers builds price-band offers for the given courses, keeps
// the three with the highest discount and stores them together with a
// same-day house-pay discount for the table.
func (s *Service) GenerateDynamicOffers(
	ctx context.Context,
	restaurantID, tableID string,
	courses []string,
) ([]Offer, error) {

	if restaurantID == "" || tableID == "" {
		return nil, errors.New("missing restaurant or table id")
	}
	if len(courses) == 0 {
		courses = []string{"starters", "mains", "desserts"}
	}

	settings, err := s.repo.Settings(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog.ItemsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	candidates := buildCourseOffers(catalog, courses, settings.MaxOfferPercentage)
	offers := topOffersByDiscount(candidates)
	if len(offers) == 0 {
		return nil, nil
	}

	now := time.Now().In(istZone)
	for i := range offers {
		offers[i].ID = uuid.NewString()
		offers[i].RestaurantID = restaurantID
		offers[i].TableID = tableID
		offers[i].OfferType = settings.OfferType
		offers[i].CreatedAt = now
	}

	if err := s.repo.InsertOffers(ctx, offers); err != nil {
		return nil, err
	}
	if err := s.repo.InsertDiscount(ctx, housePayDiscount(restaurantID, tableID, now)); err != nil {
		return nil, err
	}

	return offers, nil
}

// housePayDiscount builds the single-use percentage discount that backs the
// generated offers, valid for the rest of the day.
func housePayDiscount(restaurantID, tableID string, now time.Time) Discount {
	id := uuid.NewString()
	day := now.Format("2006-01-02")

	return Discount{
		ID:           id,
		RestaurantID: restaurantID,
		TableID:      tableID,
		Name:         "House Pay",
		Scope:        "order",
		Method:       "percentage",
		Value:        housePayPercent,
		StartDate:    day,
		EndDate:      day,
		StartTime:    now.Format("15:04"),
		EndTime:      "23:59",
		UsageLimit:   1,
		Active:       true,
		Code:         "HP" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8]),
	}
}
