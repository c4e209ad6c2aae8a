package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	outbox       repo.OutboxRepository
	carts        repo.CartRepository
	loyaltyCards repo.LoyaltyCardRepository
	shifts       repo.ShiftRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository             { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository     { return r.orderItems }
func (r *txReposGorm) Outbox() repo.OutboxRepository            { return r.outbox }
func (r *txReposGorm) Carts() repo.CartRepository               { return r.carts }
func (r *txReposGorm) LoyaltyCards() repo.LoyaltyCardRepository { return r.loyaltyCards }
func (r *txReposGorm) Shifts() repo.ShiftRepository             { return r.shifts }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:       NewOrderGormRepository(tx),
			orderItems:   NewOrderItemGormRepository(tx),
			outbox:       NewOutboxGormRepository(tx),
			carts:        NewCartGormRepository(tx),
			loyaltyCards: NewLoyaltyCardGormRepository(tx),
			shifts:       NewShiftGormRepository(tx),
		}
		return fn(r)
	})
}
