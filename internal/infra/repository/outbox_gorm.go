package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OutboxGormRepository struct {
	db *gorm.DB
}

func NewOutboxGormRepository(db *gorm.DB) *OutboxGormRepository {
	return &OutboxGormRepository{db: db}
}

func (r *OutboxGormRepository) Create(ctx context.Context, ev model.OutboxEvent) error {
	return r.db.WithContext(ctx).Create(&ev).Error
}

func (r *OutboxGormRepository) ListUnpublished(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var items []model.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.OutboxEvent{}, err
	}
	return items, nil
}

func (r *OutboxGormRepository) MarkPublished(ctx context.Context, id string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.OutboxEvent{}).
		Where("id = ?", id).
		Update("published_at", &now)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OutboxGormRepository) RecordFailure(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.OutboxEvent{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1"))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OutboxGormRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OutboxEvent{}).
		Where("published_at IS NULL").
		Count(&count).Error
	return count, err
}
