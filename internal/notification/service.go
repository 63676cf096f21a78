package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/Noel-auki/order-engine/internal/order"
)

// Pusher delivers a notification to connected captain devices. The wire
// format stays behind this boundary.
type Pusher interface {
	Push(ctx context.Context, n Notification) error
}

// NopPusher drops every push. Used when no push channel is configured.
type NopPusher struct{}

func (NopPusher) Push(context.Context, Notification) error { return nil }

type Service struct {
	repo   Repository
	pusher Pusher
}

func NewService(repo Repository, pusher Pusher) *Service {
	if pusher == nil {
		pusher = NopPusher{}
	}
	return &Service{repo: repo, pusher: pusher}
}

// --------------------------------------------------
// Order notifications
// --------------------------------------------------
// OrderUpdated raises a KOT-numbered notification carrying the submission
// delta, with one delivery line per changed customization. It satisfies the
// order service's notifier dependency.
func (s *Service) OrderUpdated(
	ctx context.Context,
	restaurantID, tableID, orderID string,
	delta order.Delta,
) error {

	if len(delta) == 0 {
		return nil
	}

	payload, err := json.Marshal(delta)
	if err != nil {
		return err
	}

	kot, err := s.repo.NextKOTNumber(ctx, restaurantID)
	if err != nil {
		return err
	}

	n := &Notification{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		TableID:      tableID,
		OrderID:      orderID,
		Type:         TypeOrder,
		KOTNumber:    kot,
		Payload:      payload,
		Active:       true,
	}

	var deliveries []Delivery
	for itemID, entry := range delta {
		for _, c := range entry.Customizations {
			deliveries = append(deliveries, Delivery{
				ID:             uuid.NewString(),
				NotificationID: n.ID,
				ItemID:         itemID,
				Name:           entry.Name,
				QtyChange:      c.QtyChange,
			})
		}
	}

	if err := s.repo.Insert(ctx, n, deliveries); err != nil {
		return err
	}

	if err := s.pusher.Push(ctx, *n); err != nil {
		// Push is fire-and-forget; the row is already on the feed.
		log.Printf("notification %s: push failed: %v", n.ID, err)
	}
	return nil
}

// --------------------------------------------------
// Action notifications
// --------------------------------------------------
// RaiseAction records a table action such as call-waiter. Active rows of the
// same type for the table are retired first, so a guest tapping the button
// five times produces one feed entry.
func (s *Service) RaiseAction(
	ctx context.Context,
	restaurantID, tableID, notificationType string,
) (*Notification, error) {

	if notificationType != TypeCallWaiter && notificationType != TypeAskForBill {
		return nil, errors.New("unknown notification type")
	}

	if err := s.repo.DeactivateSimilar(ctx, restaurantID, tableID, notificationType); err != nil {
		return nil, err
	}

	n := &Notification{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		TableID:      tableID,
		Type:         notificationType,
		Active:       true,
	}
	if err := s.repo.Insert(ctx, n, nil); err != nil {
		return nil, err
	}

	if err := s.pusher.Push(ctx, *n); err != nil {
		log.Printf("notification %s: push failed: %v", n.ID, err)
	}
	return n, nil
}

// --------------------------------------------------
// Feed
// --------------------------------------------------
func (s *Service) Feed(ctx context.Context, restaurantID string) ([]Notification, error) {
	return s.repo.ActiveByRestaurant(ctx, restaurantID)
}

func (s *Service) Dismiss(ctx context.Context, notificationID string) error {
	return s.repo.Deactivate(ctx, notificationID)
}

func (s *Service) MarkDelivered(ctx context.Context, deliveryID string) error {
	return s.repo.MarkDelivered(ctx, deliveryID)
}
