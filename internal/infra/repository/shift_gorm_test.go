package repository

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftCreate_DuplicateOpenConflict(t *testing.T) {
	db := newTestDB(t)
	r := NewShiftGormRepository(db)
	ctx := context.Background()

	first := model.Shift{CashierID: 1, StartTime: time.Now(), InitialCash: 100, Status: model.ShiftStatusOpen}
	require.NoError(t, r.Create(ctx, &first))

	//同じ担当者の二重開局はunique違反
	second := model.Shift{CashierID: 1, StartTime: time.Now(), InitialCash: 50, Status: model.ShiftStatusOpen}
	err := r.Create(ctx, &second)
	assert.ErrorIs(t, err, repo.ErrConflict)

	//別の担当者は開局できる
	other := model.Shift{CashierID: 2, StartTime: time.Now(), InitialCash: 80, Status: model.ShiftStatusOpen}
	require.NoError(t, r.Create(ctx, &other))
}

func TestShiftCloseThenReopen(t *testing.T) {
	db := newTestDB(t)
	r := NewShiftGormRepository(db)
	ctx := context.Background()

	s := model.Shift{CashierID: 1, StartTime: time.Now(), InitialCash: 100, Status: model.ShiftStatusOpen}
	require.NoError(t, r.Create(ctx, &s))

	now := time.Now()
	finalCash := 150.0
	expected := 150.0
	s.EndTime = &now
	s.FinalCash = &finalCash
	s.ExpectedCash = &expected
	require.NoError(t, r.Close(ctx, &s))

	//閉局後は開局中シフトが無い
	_, err := r.FindOpenByCashier(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	//閉局済みなので再度開局できる
	next := model.Shift{CashierID: 1, StartTime: time.Now(), InitialCash: 120, Status: model.ShiftStatusOpen}
	require.NoError(t, r.Create(ctx, &next))

	//二重closeはNotFound
	err = r.Close(ctx, &s)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	got, err := r.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusClosed, got.Status)
	require.NotNil(t, got.FinalCash)
	assert.InDelta(t, 150.0, *got.FinalCash, 1e-9)
}

func TestShiftList_JoinsCashierName(t *testing.T) {
	db := newTestDB(t)
	r := NewShiftGormRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Profile{
		Email: "ana@example.com", PasswordHash: "x", FullName: "Ana", Role: model.RoleCashier, IsActive: true,
	}).Error)

	s := model.Shift{CashierID: 1, StartTime: time.Now(), InitialCash: 100, Status: model.ShiftStatusOpen}
	require.NoError(t, r.Create(ctx, &s))

	rows, err := r.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0].CashierName)
}
