package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type SalesListFilter struct {
	From          *time.Time
	To            *time.Time
	PaymentMethod string
}

// レポート用の1行（cashier名をjoin済みの型付きDTO）
type SalesRow struct {
	Order       model.Order
	CashierName string
	ItemCount   int64
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//同じキーなら同じ注文を返す（端末リトライの二重登録防止）
	FindByIdempotencyKey(ctx context.Context, cashierID int64, key string) (model.Order, bool, error)

	//シフト集計用：開局以降のその担当者の注文
	ListByCashierSince(ctx context.Context, cashierID int64, since time.Time) ([]model.Order, error)

	//outboxが配信成功したとき
	MarkSynced(ctx context.Context, orderID int64) error

	//レポート用一覧（新しい順）
	ListSales(ctx context.Context, f SalesListFilter) ([]SalesRow, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
