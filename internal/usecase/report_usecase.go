package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	repo "app/internal/repository"
)

// ReportUsecase は売上レポート。一覧・集計・CSVエクスポート。
type ReportUsecase struct {
	orders repo.OrderRepository
	items  repo.OrderItemRepository
}

func NewReportUsecase(orders repo.OrderRepository, items repo.OrderItemRepository) *ReportUsecase {
	return &ReportUsecase{
		orders: orders,
		items:  items,
	}
}

type SaleResponse struct {
	ID            int64     `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CashierName   string    `json:"cashier_name"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int64     `json:"item_count"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

type PaymentBreakdown struct {
	Method  string  `json:"method"`
	Count   int64   `json:"count"`
	Total   float64 `json:"total"`
	Percent float64 `json:"percent"`
}

type SalesSummary struct {
	TotalOrders  int64              `json:"total_orders"`
	TotalSales   float64            `json:"total_sales"`
	AverageOrder float64            `json:"average_order"`
	ByMethod     []PaymentBreakdown `json:"by_method"`
}

func (u *ReportUsecase) ListSales(ctx context.Context, f repo.SalesListFilter) ([]SaleResponse, error) {
	rows, err := u.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]SaleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toSaleResponse(r))
	}
	return out, nil
}

func (u *ReportUsecase) Summary(ctx context.Context, f repo.SalesListFilter) (SalesSummary, error) {
	rows, err := u.fetch(ctx, f)
	if err != nil {
		return SalesSummary{}, err
	}

	var s SalesSummary
	byMethod := map[string]*PaymentBreakdown{}
	//表示順を固定
	order := []string{"cash", "card", "qr"}
	for _, m := range order {
		byMethod[m] = &PaymentBreakdown{Method: m}
	}

	for _, r := range rows {
		s.TotalOrders++
		s.TotalSales += r.Order.Total
		m := string(r.Order.PaymentMethod)
		b, ok := byMethod[m]
		if !ok {
			b = &PaymentBreakdown{Method: m}
			byMethod[m] = b
			order = append(order, m)
		}
		b.Count++
		b.Total += r.Order.Total
	}

	if s.TotalOrders > 0 {
		s.AverageOrder = s.TotalSales / float64(s.TotalOrders)
	}
	for _, m := range order {
		b := byMethod[m]
		if s.TotalSales > 0 {
			b.Percent = b.Total / s.TotalSales * 100
		}
		s.ByMethod = append(s.ByMethod, *b)
	}
	return s, nil
}

// ExportCSV は売上一覧をCSVで返す。列構成と書式は帳票側の取り込みに合わせて固定。
func (u *ReportUsecase) ExportCSV(ctx context.Context, f repo.SalesListFilter) ([]byte, error) {
	rows, err := u.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Fecha/Hora", "Orden #", "Cajero", "Método", "Items", "Subtotal", "Impuestos", "Total"}); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	for _, r := range rows {
		rec := []string{
			r.Order.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Order.OrderNumber,
			r.CashierName,
			string(r.Order.PaymentMethod),
			fmt.Sprintf("%d", r.ItemCount),
			fmt.Sprintf("%.2f", r.Order.Subtotal),
			fmt.Sprintf("%.2f", r.Order.Tax),
			fmt.Sprintf("%.2f", r.Order.Total),
		}
		if err := w.Write(rec); err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return buf.Bytes(), nil
}

// GetSaleDetail は注文1件と明細。
func (u *ReportUsecase) GetSaleDetail(ctx context.Context, orderID int64) (OrderOutput, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutput(o, items), nil
}

func (u *ReportUsecase) fetch(ctx context.Context, f repo.SalesListFilter) ([]repo.SalesRow, error) {
	if f.PaymentMethod != "" {
		switch f.PaymentMethod {
		case "cash", "card", "qr":
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
		}
	}
	rows, err := u.orders.ListSales(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func toSaleResponse(r repo.SalesRow) SaleResponse {
	return SaleResponse{
		ID:            r.Order.ID,
		OrderNumber:   r.Order.OrderNumber,
		CashierName:   r.CashierName,
		PaymentMethod: string(r.Order.PaymentMethod),
		ItemCount:     r.ItemCount,
		Subtotal:      r.Order.Subtotal,
		Tax:           r.Order.Tax,
		Total:         r.Order.Total,
		CreatedAt:     r.Order.CreatedAt,
	}
}
