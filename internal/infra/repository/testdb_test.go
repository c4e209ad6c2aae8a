package repository

import (
	"testing"

	"app/internal/domain/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// インメモリSQLiteのテストDB。
// 部分uniqueインデックスはSQLiteでも同じ構文で効く。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Profile{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Shift{},
		&model.CartSnapshot{},
		&model.LoyaltyCard{},
		&model.OutboxEvent{},
	))

	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_shifts_open_per_cashier ON shifts (cashier_id) WHERE status = 'open'`,
	).Error)

	return db
}
