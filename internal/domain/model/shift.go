package model

import "time"

type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "open"
	ShiftStatusClosed ShiftStatus = "closed"
)

// レジ1回分の開局〜閉局。cashier_idにつきopenは1件
// （部分uniqueインデックスで強制、migrations参照）。
type Shift struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CashierID    int64       `gorm:"not null;index" json:"cashier_id"`
	StartTime    time.Time   `gorm:"not null" json:"start_time"`
	EndTime      *time.Time  `json:"end_time"`
	InitialCash  float64     `gorm:"not null" json:"initial_cash"`
	FinalCash    *float64    `json:"final_cash"`
	ExpectedCash *float64    `json:"expected_cash"`
	Status       ShiftStatus `gorm:"type:varchar(10);not null;index" json:"status"`
	Notes        string      `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
