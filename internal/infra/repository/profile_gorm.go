package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

func (r *ProfileGormRepository) Create(ctx context.Context, p *model.Profile) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrConflict
	}
	return err
}

func (r *ProfileGormRepository) FindByID(ctx context.Context, id int64) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileGormRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileGormRepository) Update(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProfileGormRepository) List(ctx context.Context) ([]model.Profile, error) {
	var items []model.Profile
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return []model.Profile{}, err
	}
	return items, nil
}
