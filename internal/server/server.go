package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ルート登録に必要なハンドラ一式
type Handlers struct {
	Auth      *handler.AuthHandler
	Cart      *handler.CartHandler
	Checkout  *handler.CheckoutHandler
	Shift     *handler.ShiftHandler
	Sync      *handler.SyncHandler
	Catalog   *handler.CatalogHandler
	Inventory *handler.InventoryHandler
	Loyalty   *handler.LoyaltyHandler
	Report    *handler.ReportHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(appmw.PrometheusMiddleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	RegisterRoutes(e, cfg, h)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
