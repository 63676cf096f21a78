package restaurant

import (
	"context"
	"errors"
)

var validRoundingTypes = map[string]bool{
	"round-up":      true,
	"round-down":    true,
	"round-up-down": true,
	"default":       true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Read configuration
// --------------------------------------------------
func (s *Service) Get(ctx context.Context, restaurantID string) (*Restaurant, error) {
	if restaurantID == "" {
		return nil, errors.New("missing restaurant id")
	}
	return s.repo.GetByID(ctx, restaurantID)
}

// --------------------------------------------------
// Update billing configuration
// --------------------------------------------------
func (s *Service) UpdateBilling(
	ctx context.Context,
	restaurantID string,
	update BillingUpdate,
) (*Restaurant, error) {

	if restaurantID == "" {
		return nil, errors.New("missing restaurant id")
	}
	if update.RoundingType != nil && !validRoundingTypes[*update.RoundingType] {
		return nil, errors.New("invalid rounding type")
	}
	if update.ServiceChargePercent != nil && *update.ServiceChargePercent < 0 {
		return nil, errors.New("service charge percent must not be negative")
	}

	return s.repo.UpdateBilling(ctx, restaurantID, update)
}
