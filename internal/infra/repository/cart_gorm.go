package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

func (r *CartGormRepository) FindByCashier(ctx context.Context, cashierID int64) (model.CartSnapshot, error) {
	var snap model.CartSnapshot
	err := r.db.WithContext(ctx).
		Where("cashier_id = ?", cashierID).
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartSnapshot{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartSnapshot{}, err
	}
	return snap, nil
}

// Save はcashier_idでupsertする。
func (r *CartGormRepository) Save(ctx context.Context, cashierID int64, payload string) error {
	snap := model.CartSnapshot{CashierID: cashierID, Payload: payload}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cashier_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snap).Error
}

func (r *CartGormRepository) DeleteByCashier(ctx context.Context, cashierID int64) error {
	// 無ければ何もしない（clearは冪等）
	return r.db.WithContext(ctx).
		Where("cashier_id = ?", cashierID).
		Delete(&model.CartSnapshot{}).Error
}
