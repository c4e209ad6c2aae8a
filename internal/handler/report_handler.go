package handler

import (
	"fmt"
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 売上レポート。adminのみ。
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

// DI
func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin/reports")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.GET("/sales", h.listSales)
	admin.GET("/sales/:id", h.saleDetail)
	admin.GET("/summary", h.summary)
	admin.GET("/export", h.exportCSV)
}

// クエリパラメータからフィルタを組み立てる。
// from/toはRFC3339または日付のみ（日付のみのtoはその日いっぱい）。
func salesFilter(c echo.Context) (repo.SalesListFilter, error) {
	var f repo.SalesListFilter

	if v := c.QueryParam("from"); v != "" {
		t, err := parseDateTime(v, false)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := parseDateTime(v, true)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	f.PaymentMethod = c.QueryParam("payment_method")
	return f, nil
}

func parseDateTime(v string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func (h *ReportHandler) listSales(c echo.Context) error {
	f, err := salesFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
	}

	out, err := h.uc.ListSales(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) saleDetail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetSaleDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) summary(c echo.Context) error {
	f, err := salesFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
	}

	out, err := h.uc.Summary(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) exportCSV(c echo.Context) error {
	f, err := salesFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
	}

	raw, err := h.uc.ExportCSV(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("ventas_%s.csv", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", raw)
}
