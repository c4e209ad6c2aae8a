package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/outbox"

	"github.com/labstack/echo/v4"
)

// レジ画面の同期インジケータ /sync
type SyncHandler struct {
	poller *outbox.Poller
}

// DI
func NewSyncHandler(poller *outbox.Poller) *SyncHandler {
	return &SyncHandler{poller: poller}
}

type SyncStatusResponse struct {
	Pending int64 `json:"pending"`
}

func (h *SyncHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/sync")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("/pending", h.pending)
}

func (h *SyncHandler) pending(c echo.Context) error {
	n, err := h.poller.Pending(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, SyncStatusResponse{Pending: n})
}
