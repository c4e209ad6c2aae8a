package repository

import (
	"context"

	"app/internal/domain/model"
)

type IngredientRepository interface {
	FindByID(ctx context.Context, id int64) (model.Ingredient, error)
	List(ctx context.Context) ([]model.Ingredient, error)
	Create(ctx context.Context, ing *model.Ingredient) error
	Update(ctx context.Context, ing *model.Ingredient) error
	Delete(ctx context.Context, id int64) error

	// 在庫加算は read-modify-write ではなく1文のUPDATEで行う
	// （同時更新でも欠損しない）。deltaは負も可。
	AddStock(ctx context.Context, id int64, delta float64) error
}

type StockLogRepository interface {
	Create(ctx context.Context, logEntry model.StockLog) error
	ListByIngredientID(ctx context.Context, ingredientID int64, limit int) ([]model.StockLog, error)
	List(ctx context.Context, limit int) ([]model.StockLog, error)
}

type SupplierRepository interface {
	FindByID(ctx context.Context, id int64) (model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
	Create(ctx context.Context, s *model.Supplier) error
	Update(ctx context.Context, s *model.Supplier) error
	Delete(ctx context.Context, id int64) error
}
