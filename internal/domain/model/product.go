package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	BasePrice   float64        `gorm:"not null" json:"base_price"`
	CategoryID  *int64         `gorm:"index" json:"category_id"`
	ImageURL    string         `gorm:"type:text" json:"image_url"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// レシピ（商品1つに必要な材料と分量）
type ProductIngredient struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    int64   `gorm:"not null;index" json:"product_id"`
	IngredientID int64   `gorm:"not null;index" json:"ingredient_id"`
	Quantity     float64 `gorm:"not null" json:"quantity"`
}
