package repository

import (
	"context"

	"app/internal/domain/model"
)

type LoyaltyCardRepository interface {
	FindByID(ctx context.Context, id int64) (model.LoyaltyCard, error)
	FindByPhone(ctx context.Context, phone string) (model.LoyaltyCard, error)
	List(ctx context.Context) ([]model.LoyaltyCard, error)
	Create(ctx context.Context, card *model.LoyaltyCard) error
	Update(ctx context.Context, card *model.LoyaltyCard) error
	Delete(ctx context.Context, id int64) error

	// 会計確定時の加算（points/total_spentを1文で加算）
	Accrue(ctx context.Context, id int64, points int64, spent float64) error
}

type LoyaltyRuleRepository interface {
	FindByID(ctx context.Context, id int64) (model.LoyaltyRule, error)
	List(ctx context.Context) ([]model.LoyaltyRule, error)
	Create(ctx context.Context, rule *model.LoyaltyRule) error
	Update(ctx context.Context, rule *model.LoyaltyRule) error
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
}
