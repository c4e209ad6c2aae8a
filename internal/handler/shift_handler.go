package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// シフトの開局/閉局 /shifts
type ShiftHandler struct {
	uc *usecase.ShiftUsecase
}

// DI
func NewShiftHandler(uc *usecase.ShiftUsecase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

type OpenShiftRequest struct {
	InitialCash float64 `json:"initial_cash"`
	Notes       string  `json:"notes"`
}

type CloseShiftRequest struct {
	FinalCash float64 `json:"final_cash"`
	Notes     string  `json:"notes"`
}

func (h *ShiftHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/shifts")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("/open", h.open)
	g.POST("/close", h.close)
	g.GET("/current", h.current)
	g.GET("/current/totals", h.totals)

	//履歴と詳細はadminのみ
	admin := e.Group("/admin/shifts")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.GET("", h.list)
	admin.GET("/:id", h.detail)
}

func (h *ShiftHandler) open(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OpenShiftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Open(c.Request().Context(), userID, req.InitialCash, req.Notes)
	middleware.RecordOrderOperation("open_shift", err == nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ShiftHandler) close(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CloseShiftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Close(c.Request().Context(), userID, req.FinalCash, req.Notes)
	middleware.RecordOrderOperation("close_shift", err == nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShiftHandler) current(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Current(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShiftHandler) totals(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Totals(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShiftHandler) list(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShiftHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	shift, totals, err := h.uc.Detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"shift":  shift,
		"totals": totals,
	})
}
