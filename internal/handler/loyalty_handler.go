package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ポイントカードと特典ルール。
// カードの検索と新規登録はレジ画面からもできる。
type LoyaltyHandler struct {
	uc *usecase.LoyaltyUsecase
}

// DI
func NewLoyaltyHandler(uc *usecase.LoyaltyUsecase) *LoyaltyHandler {
	return &LoyaltyHandler{uc: uc}
}

func (h *LoyaltyHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/loyalty")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("/cards/lookup", h.lookupCard)
	g.POST("/cards", h.createCard)

	admin := e.Group("/admin/loyalty")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.GET("/cards", h.listCards)
	admin.PUT("/cards/:id", h.updateCard)
	admin.DELETE("/cards/:id", h.deleteCard)
	admin.GET("/rules", h.listRules)
	admin.POST("/rules", h.createRule)
	admin.PUT("/rules/:id", h.updateRule)
	admin.DELETE("/rules/:id", h.deleteRule)
}

func (h *LoyaltyHandler) lookupCard(c echo.Context) error {
	out, err := h.uc.FindCardByPhone(c.Request().Context(), c.QueryParam("phone"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoyaltyHandler) listCards(c echo.Context) error {
	out, err := h.uc.ListCards(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoyaltyHandler) createCard(c echo.Context) error {
	var req usecase.LoyaltyCardInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateCard(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *LoyaltyHandler) updateCard(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.LoyaltyCardInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateCard(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoyaltyHandler) deleteCard(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteCard(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoyaltyHandler) listRules(c echo.Context) error {
	out, err := h.uc.ListRules(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoyaltyHandler) createRule(c echo.Context) error {
	var req usecase.LoyaltyRuleInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateRule(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *LoyaltyHandler) updateRule(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.LoyaltyRuleInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateRule(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoyaltyHandler) deleteRule(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteRule(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
