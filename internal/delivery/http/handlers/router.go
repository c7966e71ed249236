package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Rental  *RentalHandler
	Gpu     *GpuHandler
	Payment *PaymentHandler
	Stats   *StatsHandler
	Health  *HealthHandler
}

func RegisterRoutes(e *echo.Echo, h *Handlers) {
	e.GET("/health", h.Health.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")

	// GPU listings
	v1.POST("/gpus", h.Gpu.Register)
	v1.GET("/gpus", h.Gpu.List)
	v1.GET("/gpus/:id", h.Gpu.Get)
	v1.PATCH("/gpus/:id/active", h.Gpu.SetActive)

	// Rental lifecycle
	v1.POST("/rentals", h.Rental.Create)
	v1.GET("/rentals/:id", h.Rental.Get)
	v1.POST("/rentals/:id/initiate-payment", h.Rental.InitiatePayment)
	v1.POST("/rentals/:id/stop", h.Rental.Stop)
	v1.POST("/rentals/:id/cancel", h.Rental.Cancel)
	v1.GET("/rentals/:id/payments", h.Payment.ListRentalPayments)

	// Payment callbacks
	v1.POST("/payments/callback", h.Payment.HandleCallback)
	v1.POST("/payments/mpesa/:rentalId", h.Payment.HandleMpesa)

	// Dashboards
	v1.GET("/users/:id/rentals", h.Rental.ListUserRentals)
	v1.GET("/users/:id/stats", h.Stats.GetUserStats)
	v1.GET("/users/:id/stats/monthly", h.Stats.GetMonthlyBreakdown)
	v1.GET("/users/:id/payments", h.Stats.ListUserPayments)
	v1.POST("/users/:id/stats/rebuild", h.Stats.RebuildUserStats)
}
