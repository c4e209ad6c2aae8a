package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, repo.ErrConflict
		}
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) FindByIdempotencyKey(ctx context.Context, cashierID int64, key string) (model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("cashier_id = ? AND idempotency_key = ?", cashierID, key).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, err
	}
	return o, true, nil
}

func (r *OrderGormRepository) ListByCashierSince(ctx context.Context, cashierID int64, since time.Time) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("cashier_id = ? AND created_at >= ?", cashierID, since).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) MarkSynced(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("synced", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// salesRowScan はjoin結果を受ける型付きの行。
type salesRowScan struct {
	model.Order
	CashierName string
	ItemCount   int64
}

func (r *OrderGormRepository) ListSales(ctx context.Context, f repo.SalesListFilter) ([]repo.SalesRow, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Select(`orders.*,
			COALESCE(NULLIF(profiles.full_name, ''), profiles.email) AS cashier_name,
			(SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id) AS item_count`).
		Joins("LEFT JOIN profiles ON profiles.id = orders.cashier_id")

	if f.From != nil {
		q = q.Where("orders.created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("orders.created_at <= ?", *f.To)
	}
	if f.PaymentMethod != "" {
		q = q.Where("orders.payment_method = ?", f.PaymentMethod)
	}

	var rows []salesRowScan
	if err := q.Order("orders.created_at desc").Scan(&rows).Error; err != nil {
		return []repo.SalesRow{}, err
	}

	out := make([]repo.SalesRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, repo.SalesRow{
			Order:       row.Order,
			CashierName: row.CashierName,
			ItemCount:   row.ItemCount,
		})
	}
	return out, nil
}

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}
