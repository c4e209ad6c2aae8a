package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CatalogUsecase は商品・カテゴリ・レシピの管理。
// 一覧はレジ画面（active限定）と管理画面（全件）の両方から使う。
type CatalogUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	recipes    repo.RecipeRepository
}

func NewCatalogUsecase(products repo.ProductRepository, categories repo.CategoryRepository, recipes repo.RecipeRepository) *CatalogUsecase {
	return &CatalogUsecase{
		products:   products,
		categories: categories,
		recipes:    recipes,
	}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"`
	CategoryID  *int64  `json:"category_id"`
	ImageURL    string  `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryInput struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

type RecipeItemInput struct {
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, f repo.ProductListFilter) ([]model.Product, error) {
	products, err := u.products.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		BasePrice:   in.BasePrice,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := u.products.Create(ctx, &p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *CatalogUsecase) UpdateProduct(ctx context.Context, id int64, in ProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.BasePrice = in.BasePrice
	p.CategoryID = in.CategoryID
	p.ImageURL = in.ImageURL
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := u.products.Update(ctx, &p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// DeleteProduct は論理削除（過去の注文明細からの参照が残るため）。
func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if err := u.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categories.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cats, nil
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	c := model.Category{
		Name:      strings.TrimSpace(in.Name),
		Icon:      in.Icon,
		SortOrder: in.SortOrder,
	}
	if err := u.categories.Create(ctx, &c); err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CatalogUsecase) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	c, err := u.categories.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Icon = in.Icon
	c.SortOrder = in.SortOrder
	if err := u.categories.Update(ctx, &c); err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CatalogUsecase) DeleteCategory(ctx context.Context, id int64) error {
	if err := u.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) GetRecipe(ctx context.Context, productID int64) ([]model.ProductIngredient, error) {
	items, err := u.recipes.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// SetRecipe は商品のレシピをまるごと置き換える。
func (u *CatalogUsecase) SetRecipe(ctx context.Context, productID int64, in []RecipeItemInput) ([]model.ProductIngredient, error) {
	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]model.ProductIngredient, 0, len(in))
	for _, it := range in {
		if it.IngredientID <= 0 || it.Quantity <= 0 {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid recipe item")
		}
		items = append(items, model.ProductIngredient{
			ProductID:    productID,
			IngredientID: it.IngredientID,
			Quantity:     it.Quantity,
		})
	}

	if err := u.recipes.ReplaceForProduct(ctx, productID, items); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.BasePrice < 0 {
		return NewHTTPError(http.StatusBadRequest, "base_price must be >= 0")
	}
	return nil
}
