package repository

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxLifecycle(t *testing.T) {
	db := newTestDB(t)
	r := NewOutboxGormRepository(db)
	ctx := context.Background()

	ev1 := model.OutboxEvent{
		ID: "ev-1", AggregateID: 1, EventType: model.EventTypeOrderCompleted,
		Payload: `{"id":1}`, CreatedAt: time.Now().Add(-time.Minute),
	}
	ev2 := model.OutboxEvent{
		ID: "ev-2", AggregateID: 2, EventType: model.EventTypeOrderCompleted,
		Payload: `{"id":2}`, CreatedAt: time.Now(),
	}
	require.NoError(t, r.Create(ctx, ev1))
	require.NoError(t, r.Create(ctx, ev2))

	//古い順に返る
	pending, err := r.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "ev-1", pending[0].ID)

	n, err := r.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	//配信成功で未配信から外れる
	require.NoError(t, r.MarkPublished(ctx, "ev-1"))
	pending, err = r.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ev-2", pending[0].ID)

	//失敗はattemptsを増やすだけ（未配信のまま）
	require.NoError(t, r.RecordFailure(ctx, "ev-2"))
	pending, err = r.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts)

	n, err = r.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
