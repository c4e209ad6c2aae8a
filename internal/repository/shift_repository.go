package repository

import (
	"context"

	"app/internal/domain/model"
)

// 管理画面用の1行（cashier名join済み）
type ShiftRow struct {
	Shift       model.Shift
	CashierName string
}

type ShiftRepository interface {
	// open中シフトが既にあれば ErrConflict
	// （部分uniqueインデックス違反を正とする。read-then-writeはレース）
	Create(ctx context.Context, s *model.Shift) error

	FindOpenByCashier(ctx context.Context, cashierID int64) (model.Shift, error)
	FindByID(ctx context.Context, id int64) (model.Shift, error)

	// 閉局は1行のUPDATE（end_time/final_cash/expected_cash/status/notes）
	Close(ctx context.Context, s *model.Shift) error

	List(ctx context.Context, limit int) ([]ShiftRow, error)
}
