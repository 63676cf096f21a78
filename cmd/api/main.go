package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Noel-auki/order-engine/internal/auth"
	"github.com/Noel-auki/order-engine/internal/bill"
	"github.com/Noel-auki/order-engine/internal/db"
	"github.com/Noel-auki/order-engine/internal/menu"
	"github.com/Noel-auki/order-engine/internal/notification"
	"github.com/Noel-auki/order-engine/internal/offer"
	"github.com/Noel-auki/order-engine/internal/order"
	"github.com/Noel-auki/order-engine/internal/restaurant"
	"github.com/Noel-auki/order-engine/internal/router"
	"github.com/Noel-auki/order-engine/internal/storage"
)

// offerEngine adapts the offer service to the order service's dependency.
type offerEngine struct {
	svc  *offer.Service
	repo offer.Repository
}

func (e offerEngine) Avail(
	ctx context.Context,
	restaurantID, tableID, orderID, offerID string,
	items order.Items,
) (bool, bool, error) {
	out, err := e.svc.Avail(ctx, restaurantID, tableID, orderID, offerID, items)
	return out.FullyAvailed, out.PartiallyAvailed, err
}

func (e offerEngine) DeactivateMatched(
	ctx context.Context,
	restaurantID, tableID string,
	items order.Items,
) error {
	return e.svc.DeactivateMatched(ctx, restaurantID, tableID, items)
}

func (e offerEngine) DeactivateTable(ctx context.Context, restaurantID, tableID string) error {
	return e.repo.DeactivateTable(ctx, restaurantID, tableID)
}

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── REPOS ─────────────────────────
	staffRepo := auth.NewPostgresStaffRepository(pgDB)
	restaurantRepo := restaurant.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	orderRepo := order.NewPostgresRepository(pgDB)
	offerRepo := offer.NewPostgresRepository(pgDB)
	notificationRepo := notification.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	authService := auth.NewService(staffRepo)
	restaurantService := restaurant.NewService(restaurantRepo)
	menuService := menu.NewService(menuRepo)
	nameCache := menu.NewNameCache(menuRepo, 5*time.Minute)

	offerService := offer.NewService(offerRepo, menuRepo)
	notificationService := notification.NewService(notificationRepo, nil)

	billService := bill.NewService(
		bill.NewCalculator(nil),
		orderRepo,
		restaurantRepo,
		orderRepo,
		nil,
	)

	orderService := order.NewService(
		orderRepo,
		restaurantRepo,
		offerEngine{svc: offerService, repo: offerRepo},
		notificationService,
		nameCache,
		menuRepo,
		billService,
		r2Client,
	)

	// ───────────────────────── HANDLERS ─────────────────────────
	handlers := router.Handlers{
		Auth:         auth.NewHandler(authService),
		Restaurant:   restaurant.NewHandler(restaurantService),
		Menu:         menu.NewHandler(menuService),
		Order:        order.NewHandler(orderService),
		Bill:         bill.NewHandler(billService),
		Offer:        offer.NewHandler(offerService),
		Notification: notification.NewHandler(notificationService),
	}

	r := router.NewRouter(handlers)

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
