package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProductListFilter struct {
	CategoryID *int64
	Q          string
	ActiveOnly bool
}

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	// sort_order順で返す
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int64) error
}

type RecipeRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductIngredient, error)
	// 商品のレシピをまるごと置き換える
	ReplaceForProduct(ctx context.Context, productID int64, items []model.ProductIngredient) error
}
