package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type LoyaltyCardGormRepository struct {
	db *gorm.DB
}

func NewLoyaltyCardGormRepository(db *gorm.DB) *LoyaltyCardGormRepository {
	return &LoyaltyCardGormRepository{db: db}
}

func (r *LoyaltyCardGormRepository) FindByID(ctx context.Context, id int64) (model.LoyaltyCard, error) {
	var card model.LoyaltyCard
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.LoyaltyCard{}, repo.ErrNotFound
	}
	if err != nil {
		return model.LoyaltyCard{}, err
	}
	return card, nil
}

func (r *LoyaltyCardGormRepository) FindByPhone(ctx context.Context, phone string) (model.LoyaltyCard, error) {
	var card model.LoyaltyCard
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.LoyaltyCard{}, repo.ErrNotFound
	}
	if err != nil {
		return model.LoyaltyCard{}, err
	}
	return card, nil
}

func (r *LoyaltyCardGormRepository) List(ctx context.Context) ([]model.LoyaltyCard, error) {
	var items []model.LoyaltyCard
	if err := r.db.WithContext(ctx).Order("name").Find(&items).Error; err != nil {
		return []model.LoyaltyCard{}, err
	}
	return items, nil
}

func (r *LoyaltyCardGormRepository) Create(ctx context.Context, card *model.LoyaltyCard) error {
	err := r.db.WithContext(ctx).Create(card).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrConflict
	}
	return err
}

func (r *LoyaltyCardGormRepository) Update(ctx context.Context, card *model.LoyaltyCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *LoyaltyCardGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.LoyaltyCard{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Accrue はpoints/total_spentを1文で加算する。
func (r *LoyaltyCardGormRepository) Accrue(ctx context.Context, id int64, points int64, spent float64) error {
	res := r.db.WithContext(ctx).Model(&model.LoyaltyCard{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"points":      gorm.Expr("points + ?", points),
			"total_spent": gorm.Expr("total_spent + ?", spent),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type LoyaltyRuleGormRepository struct {
	db *gorm.DB
}

func NewLoyaltyRuleGormRepository(db *gorm.DB) *LoyaltyRuleGormRepository {
	return &LoyaltyRuleGormRepository{db: db}
}

func (r *LoyaltyRuleGormRepository) FindByID(ctx context.Context, id int64) (model.LoyaltyRule, error) {
	var rule model.LoyaltyRule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.LoyaltyRule{}, repo.ErrNotFound
	}
	if err != nil {
		return model.LoyaltyRule{}, err
	}
	return rule, nil
}

func (r *LoyaltyRuleGormRepository) List(ctx context.Context) ([]model.LoyaltyRule, error) {
	var items []model.LoyaltyRule
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return []model.LoyaltyRule{}, err
	}
	return items, nil
}

func (r *LoyaltyRuleGormRepository) Create(ctx context.Context, rule *model.LoyaltyRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *LoyaltyRuleGormRepository) Update(ctx context.Context, rule *model.LoyaltyRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *LoyaltyRuleGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.LoyaltyRule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LoyaltyRuleGormRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.LoyaltyRule{}).
		Where("id = ?", id).
		Update("is_active", active)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
