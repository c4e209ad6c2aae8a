package model

import "time"

type Ingredient struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Unit          string    `gorm:"type:varchar(20);not null" json:"unit"`
	CurrentStock  float64   `gorm:"not null;default:0" json:"current_stock"`
	MinStockLevel float64   `gorm:"not null;default:0" json:"min_stock_level"`
	CostPerUnit   float64   `gorm:"not null;default:0" json:"cost_per_unit"`
	SupplierID    *int64    `gorm:"index" json:"supplier_id"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type StockChangeType string

const (
	StockChangePurchase   StockChangeType = "purchase"
	StockChangeAdjustment StockChangeType = "adjustment"
	StockChangeSale       StockChangeType = "sale"
)

// 在庫の増減履歴（仕入れ・棚卸し調整など）
type StockLog struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	IngredientID int64           `gorm:"not null;index" json:"ingredient_id"`
	ChangeType   StockChangeType `gorm:"type:varchar(20);not null;index" json:"change_type"`
	Quantity     float64         `gorm:"not null" json:"quantity"`
	Notes        string          `gorm:"type:text" json:"notes"`
	CreatedBy    int64           `gorm:"not null;index" json:"created_by"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
