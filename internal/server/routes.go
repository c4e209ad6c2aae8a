package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Shift.RegisterRoutes(e, cfg)
	h.Sync.RegisterRoutes(e, cfg)
	h.Catalog.RegisterRoutes(e, cfg)
	h.Inventory.RegisterRoutes(e, cfg)
	h.Loyalty.RegisterRoutes(e, cfg)
	h.Report.RegisterRoutes(e, cfg)
}
