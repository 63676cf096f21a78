package menu

import (
	"context"
	"errors"
	"sort"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Catalog listing
// --------------------------------------------------

// Catalog returns the restaurant's menu sorted by name.
func (s *Service) Catalog(ctx context.Context, restaurantID string) ([]Item, error) {
	if restaurantID == "" {
		return nil, errors.New("missing restaurant id")
	}

	byID, err := s.repo.ItemsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(byID))
	for _, item := range byID {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// --------------------------------------------------
// Single item lookup
// --------------------------------------------------
func (s *Service) Item(ctx context.Context, restaurantID, itemID string) (*Item, error) {
	if restaurantID == "" || itemID == "" {
		return nil, errors.New("missing restaurant or item id")
	}
	return s.repo.ItemDetails(ctx, restaurantID, itemID)
}
