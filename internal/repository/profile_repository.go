package repository

import (
	"context"

	"app/internal/domain/model"
)

// 保存・取得を約束
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByID(ctx context.Context, id int64) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	// ロール変更・停止などの更新
	Update(ctx context.Context, p *model.Profile) error
	List(ctx context.Context) ([]model.Profile, error)
}
