package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Noel-auki/order-engine/internal/auth"
	"github.com/Noel-auki/order-engine/internal/bill"
	"github.com/Noel-auki/order-engine/internal/menu"
	"github.com/Noel-auki/order-engine/internal/middleware"
	"github.com/Noel-auki/order-engine/internal/notification"
	"github.com/Noel-auki/order-engine/internal/offer"
	"github.com/Noel-auki/order-engine/internal/order"
	"github.com/Noel-auki/order-engine/internal/restaurant"
)

// Handlers bundles the per-domain HTTP handlers the router wires up.
type Handlers struct {
	Auth         *auth.Handler
	Restaurant   *restaurant.Handler
	Menu         *menu.Handler
	Order        *order.Handler
	Bill         *bill.Handler
	Offer        *offer.Handler
	Notification *notification.Handler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", h.Auth.Register)
	r.POST("/auth/login", h.Auth.Login)

	api := r.Group("/api", middleware.AuthMiddleware())

	rest := api.Group("/restaurants/:restaurantId")
	{
		rest.GET("/config", h.Restaurant.GetConfig)
		rest.PATCH("/config/billing",
			middleware.RequireRole(auth.RoleAdmin), h.Restaurant.UpdateBilling)

		rest.GET("/menu", h.Menu.Catalog)
		rest.GET("/menu/:itemId", h.Menu.Item)

		rest.POST("/orders", h.Order.Submit)

		table := rest.Group("/tables/:tableId")
		{
			table.GET("/order", h.Order.Combined)
			table.POST("/temp-order", h.Order.Stage)
			table.PUT("/temp-order", h.Order.ReplaceStaged)
			table.DELETE("/temp-order", h.Order.CancelStaged)
			table.POST("/temp-order/promote", h.Order.Promote)
			table.POST("/complete", h.Order.Complete)

			table.GET("/bill", h.Bill.Current)
			table.POST("/bill/print", h.Bill.Print)
		}

		rest.GET("/offers", h.Offer.ListActive)
		rest.POST("/offers/generate", h.Offer.Generate)

		rest.GET("/notifications", h.Notification.Feed)
		rest.POST("/notifications/actions", h.Notification.RaiseAction)
	}

	orders := api.Group("/orders/:orderId")
	{
		orders.DELETE("/items", h.Order.RemoveItem)
		orders.POST("/instructions", h.Order.AppendInstruction)
		orders.PATCH("/guest-count", h.Order.SetGuestCount)
		orders.PATCH("/service-charge", h.Order.WaiveServiceCharge)
	}

	api.DELETE("/notifications/:notificationId", h.Notification.Dismiss)
	api.PATCH("/deliveries/:deliveryId/delivered", h.Notification.MarkDelivered)

	return r
}
