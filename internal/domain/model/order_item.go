package model

import "time"

type OrderItem struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64     `gorm:"not null;index" json:"order_id"`
	ProductID           int64     `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	VariantName         string    `gorm:"type:varchar(255)" json:"variant_name,omitempty"`
	UnitPrice           float64   `gorm:"not null" json:"unit_price"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	Subtotal            float64   `gorm:"not null" json:"subtotal"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
