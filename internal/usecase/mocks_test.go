package usecase

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	outbox       repo.OutboxRepository
	carts        repo.CartRepository
	loyaltyCards repo.LoyaltyCardRepository
	shifts       repo.ShiftRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository             { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository     { return r.orderItems }
func (r *TxReposMock) Outbox() repo.OutboxRepository            { return r.outbox }
func (r *TxReposMock) Carts() repo.CartRepository               { return r.carts }
func (r *TxReposMock) LoyaltyCards() repo.LoyaltyCardRepository { return r.loyaltyCards }
func (r *TxReposMock) Shifts() repo.ShiftRepository             { return r.shifts }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, cashierID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, cashierID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListByCashierSince(ctx context.Context, cashierID int64, since time.Time) ([]model.Order, error) {
	args := m.Called(ctx, cashierID, since)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) MarkSynced(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderRepoMock) ListSales(ctx context.Context, f repo.SalesListFilter) ([]repo.SalesRow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]repo.SalesRow)
	return rows, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type OutboxRepoMock struct{ mock.Mock }

func (m *OutboxRepoMock) Create(ctx context.Context, ev model.OutboxEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *OutboxRepoMock) ListUnpublished(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	evs, _ := args.Get(0).([]model.OutboxEvent)
	return evs, args.Error(1)
}

func (m *OutboxRepoMock) MarkPublished(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OutboxRepoMock) RecordFailure(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OutboxRepoMock) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) FindByCashier(ctx context.Context, cashierID int64) (model.CartSnapshot, error) {
	args := m.Called(ctx, cashierID)
	s, _ := args.Get(0).(model.CartSnapshot)
	return s, args.Error(1)
}

func (m *CartRepoMock) Save(ctx context.Context, cashierID int64, payload string) error {
	args := m.Called(ctx, cashierID, payload)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteByCashier(ctx context.Context, cashierID int64) error {
	args := m.Called(ctx, cashierID)
	return args.Error(0)
}

type LoyaltyCardRepoMock struct{ mock.Mock }

func (m *LoyaltyCardRepoMock) FindByID(ctx context.Context, id int64) (model.LoyaltyCard, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.LoyaltyCard)
	return c, args.Error(1)
}

func (m *LoyaltyCardRepoMock) FindByPhone(ctx context.Context, phone string) (model.LoyaltyCard, error) {
	args := m.Called(ctx, phone)
	c, _ := args.Get(0).(model.LoyaltyCard)
	return c, args.Error(1)
}

func (m *LoyaltyCardRepoMock) List(ctx context.Context) ([]model.LoyaltyCard, error) {
	args := m.Called(ctx)
	cards, _ := args.Get(0).([]model.LoyaltyCard)
	return cards, args.Error(1)
}

func (m *LoyaltyCardRepoMock) Create(ctx context.Context, card *model.LoyaltyCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *LoyaltyCardRepoMock) Update(ctx context.Context, card *model.LoyaltyCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *LoyaltyCardRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *LoyaltyCardRepoMock) Accrue(ctx context.Context, id int64, points int64, spent float64) error {
	args := m.Called(ctx, id, points, spent)
	return args.Error(0)
}

type ShiftRepoMock struct{ mock.Mock }

func (m *ShiftRepoMock) Create(ctx context.Context, s *model.Shift) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil {
		s.ID = 1
	}
	return args.Error(0)
}

func (m *ShiftRepoMock) FindOpenByCashier(ctx context.Context, cashierID int64) (model.Shift, error) {
	args := m.Called(ctx, cashierID)
	s, _ := args.Get(0).(model.Shift)
	return s, args.Error(1)
}

func (m *ShiftRepoMock) FindByID(ctx context.Context, id int64) (model.Shift, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Shift)
	return s, args.Error(1)
}

func (m *ShiftRepoMock) Close(ctx context.Context, s *model.Shift) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *ShiftRepoMock) List(ctx context.Context, limit int) ([]repo.ShiftRow, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]repo.ShiftRow)
	return rows, args.Error(1)
}

type ProfileRepoMock struct{ mock.Mock }

func (m *ProfileRepoMock) Create(ctx context.Context, p *model.Profile) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *ProfileRepoMock) FindByID(ctx context.Context, id int64) (*model.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepoMock) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepoMock) Update(ctx context.Context, p *model.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProfileRepoMock) List(ctx context.Context) ([]model.Profile, error) {
	args := m.Called(ctx)
	profiles, _ := args.Get(0).([]model.Profile)
	return profiles, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context, f repo.ProductListFilter) ([]model.Product, error) {
	args := m.Called(ctx, f)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type IngredientRepoMock struct{ mock.Mock }

func (m *IngredientRepoMock) FindByID(ctx context.Context, id int64) (model.Ingredient, error) {
	args := m.Called(ctx, id)
	ing, _ := args.Get(0).(model.Ingredient)
	return ing, args.Error(1)
}

func (m *IngredientRepoMock) List(ctx context.Context) ([]model.Ingredient, error) {
	args := m.Called(ctx)
	ings, _ := args.Get(0).([]model.Ingredient)
	return ings, args.Error(1)
}

func (m *IngredientRepoMock) Create(ctx context.Context, ing *model.Ingredient) error {
	args := m.Called(ctx, ing)
	return args.Error(0)
}

func (m *IngredientRepoMock) Update(ctx context.Context, ing *model.Ingredient) error {
	args := m.Called(ctx, ing)
	return args.Error(0)
}

func (m *IngredientRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *IngredientRepoMock) AddStock(ctx context.Context, id int64, delta float64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

type StockLogRepoMock struct{ mock.Mock }

func (m *StockLogRepoMock) Create(ctx context.Context, logEntry model.StockLog) error {
	args := m.Called(ctx, logEntry)
	return args.Error(0)
}

func (m *StockLogRepoMock) ListByIngredientID(ctx context.Context, ingredientID int64, limit int) ([]model.StockLog, error) {
	args := m.Called(ctx, ingredientID, limit)
	logs, _ := args.Get(0).([]model.StockLog)
	return logs, args.Error(1)
}

func (m *StockLogRepoMock) List(ctx context.Context, limit int) ([]model.StockLog, error) {
	args := m.Called(ctx, limit)
	logs, _ := args.Get(0).([]model.StockLog)
	return logs, args.Error(1)
}
