package model

import "time"

// 会計途中のカートを担当者ごとに1行で永続化する。
// 端末をリロードしてもカートが復元できる。
type CartSnapshot struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CashierID int64     `gorm:"not null;uniqueIndex" json:"cashier_id"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
