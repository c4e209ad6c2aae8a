package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type IngredientGormRepository struct {
	db *gorm.DB
}

func NewIngredientGormRepository(db *gorm.DB) *IngredientGormRepository {
	return &IngredientGormRepository{db: db}
}

func (r *IngredientGormRepository) FindByID(ctx context.Context, id int64) (model.Ingredient, error) {
	var ing model.Ingredient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Ingredient{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Ingredient{}, err
	}
	return ing, nil
}

func (r *IngredientGormRepository) List(ctx context.Context) ([]model.Ingredient, error) {
	var items []model.Ingredient
	if err := r.db.WithContext(ctx).Order("name").Find(&items).Error; err != nil {
		return []model.Ingredient{}, err
	}
	return items, nil
}

func (r *IngredientGormRepository) Create(ctx context.Context, ing *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *IngredientGormRepository) Update(ctx context.Context, ing *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *IngredientGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Ingredient{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// AddStock は1文のUPDATEで加算する（アトミック）。
func (r *IngredientGormRepository) AddStock(ctx context.Context, id int64, delta float64) error {
	res := r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("id = ?", id).
		Update("current_stock", gorm.Expr("current_stock + ?", delta))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type StockLogGormRepository struct {
	db *gorm.DB
}

func NewStockLogGormRepository(db *gorm.DB) *StockLogGormRepository {
	return &StockLogGormRepository{db: db}
}

func (r *StockLogGormRepository) Create(ctx context.Context, logEntry model.StockLog) error {
	return r.db.WithContext(ctx).Create(&logEntry).Error
}

func (r *StockLogGormRepository) ListByIngredientID(ctx context.Context, ingredientID int64, limit int) ([]model.StockLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var items []model.StockLog
	err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.StockLog{}, err
	}
	return items, nil
}

func (r *StockLogGormRepository) List(ctx context.Context, limit int) ([]model.StockLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var items []model.StockLog
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.StockLog{}, err
	}
	return items, nil
}

type SupplierGormRepository struct {
	db *gorm.DB
}

func NewSupplierGormRepository(db *gorm.DB) *SupplierGormRepository {
	return &SupplierGormRepository{db: db}
}

func (r *SupplierGormRepository) FindByID(ctx context.Context, id int64) (model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Supplier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Supplier{}, err
	}
	return s, nil
}

func (r *SupplierGormRepository) List(ctx context.Context) ([]model.Supplier, error) {
	var items []model.Supplier
	if err := r.db.WithContext(ctx).Order("name").Find(&items).Error; err != nil {
		return []model.Supplier{}, err
	}
	return items, nil
}

func (r *SupplierGormRepository) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SupplierGormRepository) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SupplierGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Supplier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
