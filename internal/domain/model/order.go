package model

import "time"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentQR   PaymentMethod = "qr"
)

// 会計確定時のスナップショット。作成後はsynced以外不変。
type Order struct {
	ID             int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber    string        `gorm:"type:varchar(20);not null" json:"order_number"`
	CashierID      int64         `gorm:"not null;index" json:"cashier_id"`
	Subtotal       float64       `gorm:"not null" json:"subtotal"`
	Tax            float64       `gorm:"not null" json:"tax"`
	Total          float64       `gorm:"not null" json:"total"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(10);not null;index" json:"payment_method"`
	AmountPaid     float64       `gorm:"not null" json:"amount_paid"`
	ChangeAmount   float64       `gorm:"not null" json:"change_amount"`
	LoyaltyPhone   string        `gorm:"type:varchar(30)" json:"loyalty_phone,omitempty"`
	IdempotencyKey string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	Synced         bool          `gorm:"not null;default:false" json:"synced"`
	CreatedAt      time.Time     `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
