package repository

import (
	"context"

	"app/internal/domain/model"
)

type OutboxRepository interface {
	Create(ctx context.Context, ev model.OutboxEvent) error
	// published_atがnullのものを古い順に
	ListUnpublished(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string) error
	RecordFailure(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int64, error)
}
