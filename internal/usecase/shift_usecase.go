package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 現金過不足とみなす閾値。浮動小数の誤差は差異にしない。
const cashDiscrepancyEpsilon = 0.01

// ShiftUsecase はレジの開局〜閉局と現金勘定。
type ShiftUsecase struct {
	shifts repo.ShiftRepository
	orders repo.OrderRepository
}

func NewShiftUsecase(shifts repo.ShiftRepository, orders repo.OrderRepository) *ShiftUsecase {
	return &ShiftUsecase{
		shifts: shifts,
		orders: orders,
	}
}

type ShiftResponse struct {
	ID           int64      `json:"id"`
	CashierID    int64      `json:"cashier_id"`
	CashierName  string     `json:"cashier_name,omitempty"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	InitialCash  float64    `json:"initial_cash"`
	FinalCash    *float64   `json:"final_cash,omitempty"`
	ExpectedCash *float64   `json:"expected_cash,omitempty"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
}

// 開局中シフトの売上集計（閉局前の確認画面にも使う）
type ShiftTotals struct {
	TotalOrders  int64   `json:"total_orders"`
	TotalSales   float64 `json:"total_sales"`
	CashSales    float64 `json:"cash_sales"`
	CardSales    float64 `json:"card_sales"`
	QRSales      float64 `json:"qr_sales"`
	ExpectedCash float64 `json:"expected_cash"`
}

type CloseShiftResult struct {
	Shift       ShiftResponse `json:"shift"`
	Totals      ShiftTotals   `json:"totals"`
	Difference  float64       `json:"difference"`
	Discrepancy bool          `json:"discrepancy"`
}

// Open は開局。同じ担当者のopen中シフトが既にあれば409。
// 二重開局の判定はDBのunique制約に任せる。
func (u *ShiftUsecase) Open(ctx context.Context, cashierID int64, initialCash float64, notes string) (ShiftResponse, error) {
	if cashierID <= 0 {
		return ShiftResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if initialCash < 0 {
		return ShiftResponse{}, NewHTTPError(http.StatusBadRequest, "initial_cash must be >= 0")
	}

	s := model.Shift{
		CashierID:   cashierID,
		StartTime:   time.Now(),
		InitialCash: initialCash,
		Status:      model.ShiftStatusOpen,
		Notes:       notes,
	}
	err := u.shifts.Create(ctx, &s)
	if errors.Is(err, repo.ErrConflict) {
		return ShiftResponse{}, NewHTTPError(http.StatusConflict, "shift already open")
	}
	if err != nil {
		return ShiftResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toShiftResponse(s, ""), nil
}

// Current は開局中シフト。無ければ404。
func (u *ShiftUsecase) Current(ctx context.Context, cashierID int64) (ShiftResponse, error) {
	if cashierID <= 0 {
		return ShiftResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	s, err := u.shifts.FindOpenByCashier(ctx, cashierID)
	if errors.Is(err, repo.ErrNotFound) {
		return ShiftResponse{}, NewHTTPError(http.StatusNotFound, "no open shift")
	}
	if err != nil {
		return ShiftResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toShiftResponse(s, ""), nil
}

// Totals は閉局前の集計プレビュー。
func (u *ShiftUsecase) Totals(ctx context.Context, cashierID int64) (ShiftTotals, error) {
	if cashierID <= 0 {
		return ShiftTotals{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	s, err := u.shifts.FindOpenByCashier(ctx, cashierID)
	if errors.Is(err, repo.ErrNotFound) {
		return ShiftTotals{}, NewHTTPError(http.StatusNotFound, "no open shift")
	}
	if err != nil {
		return ShiftTotals{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.aggregate(ctx, s)
}

// Close は閉局。期待現金 = 釣り銭準備金 + 現金売上、
// 差異 = 実査 - 期待。閾値超えはdiscrepancyとして返す（閉局自体は通す）。
func (u *ShiftUsecase) Close(ctx context.Context, cashierID int64, finalCash float64, notes string) (CloseShiftResult, error) {
	if cashierID <= 0 {
		return CloseShiftResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if finalCash < 0 {
		return CloseShiftResult{}, NewHTTPError(http.StatusBadRequest, "final_cash must be >= 0")
	}

	s, err := u.shifts.FindOpenByCashier(ctx, cashierID)
	if errors.Is(err, repo.ErrNotFound) {
		return CloseShiftResult{}, NewHTTPError(http.StatusConflict, "shift not open")
	}
	if err != nil {
		return CloseShiftResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totals, err := u.aggregate(ctx, s)
	if err != nil {
		return CloseShiftResult{}, err
	}

	now := time.Now()
	expected := totals.ExpectedCash
	s.EndTime = &now
	s.FinalCash = &finalCash
	s.ExpectedCash = &expected
	s.Status = model.ShiftStatusClosed
	if notes != "" {
		s.Notes = notes
	}

	if err := u.shifts.Close(ctx, &s); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			//別の端末が先に閉めた
			return CloseShiftResult{}, NewHTTPError(http.StatusConflict, "shift not open")
		}
		return CloseShiftResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	diff := finalCash - expected
	return CloseShiftResult{
		Shift:       toShiftResponse(s, ""),
		Totals:      totals,
		Difference:  diff,
		Discrepancy: math.Abs(diff) > cashDiscrepancyEpsilon,
	}, nil
}

// List は管理画面の履歴（新しい順、cashier名join済み）。
func (u *ShiftUsecase) List(ctx context.Context, limit int) ([]ShiftResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := u.shifts.List(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out := make([]ShiftResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toShiftResponse(r.Shift, r.CashierName))
	}
	return out, nil
}

// Detail はシフト1件と期間内の売上集計。
func (u *ShiftUsecase) Detail(ctx context.Context, shiftID int64) (ShiftResponse, ShiftTotals, error) {
	s, err := u.shifts.FindByID(ctx, shiftID)
	if errors.Is(err, repo.ErrNotFound) {
		return ShiftResponse{}, ShiftTotals{}, NewHTTPError(http.StatusNotFound, "shift not found")
	}
	if err != nil {
		return ShiftResponse{}, ShiftTotals{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	totals, err := u.aggregate(ctx, s)
	if err != nil {
		return ShiftResponse{}, ShiftTotals{}, err
	}
	return toShiftResponse(s, ""), totals, nil
}

func (u *ShiftUsecase) aggregate(ctx context.Context, s model.Shift) (ShiftTotals, error) {
	orders, err := u.orders.ListByCashierSince(ctx, s.CashierID, s.StartTime)
	if err != nil {
		return ShiftTotals{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var t ShiftTotals
	for _, o := range orders {
		//閉局済みシフトの照会では期間終端で切る
		if s.EndTime != nil && o.CreatedAt.After(*s.EndTime) {
			continue
		}
		t.TotalOrders++
		t.TotalSales += o.Total
		switch o.PaymentMethod {
		case model.PaymentCash:
			t.CashSales += o.Total
		case model.PaymentCard:
			t.CardSales += o.Total
		case model.PaymentQR:
			t.QRSales += o.Total
		}
	}
	t.ExpectedCash = s.InitialCash + t.CashSales
	return t, nil
}

func toShiftResponse(s model.Shift, cashierName string) ShiftResponse {
	return ShiftResponse{
		ID:           s.ID,
		CashierID:    s.CashierID,
		CashierName:  cashierName,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		InitialCash:  s.InitialCash,
		FinalCash:    s.FinalCash,
		ExpectedCash: s.ExpectedCash,
		Status:       string(s.Status),
		Notes:        s.Notes,
	}
}
