package repository

import (
	"context"
	"testing"

	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSnapshotUpsert(t *testing.T) {
	db := newTestDB(t)
	r := NewCartGormRepository(db)
	ctx := context.Background()

	_, err := r.FindByCashier(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, r.Save(ctx, 1, `{"lines":[]}`))
	require.NoError(t, r.Save(ctx, 1, `{"lines":[{"product_id":10}]}`))

	//2回saveしても行は1つで中身は最新
	snap, err := r.FindByCashier(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, `{"lines":[{"product_id":10}]}`, snap.Payload)

	var count int64
	require.NoError(t, db.Table("cart_snapshots").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCartSnapshotDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	r := NewCartGormRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, 1, `{"lines":[]}`))
	require.NoError(t, r.DeleteByCashier(ctx, 1))

	_, err := r.FindByCashier(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	//2回目も黙って成功
	require.NoError(t, r.DeleteByCashier(ctx, 1))
}
