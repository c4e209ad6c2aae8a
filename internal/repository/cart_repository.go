package repository

import (
	"context"

	"app/internal/domain/model"
)

// 担当者1人につきスナップショット1行
type CartRepository interface {
	FindByCashier(ctx context.Context, cashierID int64) (model.CartSnapshot, error)
	Save(ctx context.Context, cashierID int64, payload string) error
	DeleteByCashier(ctx context.Context, cashierID int64) error
}
