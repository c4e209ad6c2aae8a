package model

import "time"

// 常連客のポイントカード。phoneまたは書類番号で注文に紐づく。
type LoyaltyCard struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Email          string    `gorm:"type:varchar(255)" json:"email"`
	Phone          string    `gorm:"type:varchar(30);not null;uniqueIndex" json:"phone"`
	DocumentType   string    `gorm:"type:varchar(20)" json:"document_type"`
	DocumentNumber string    `gorm:"type:varchar(30)" json:"document_number"`
	Points         int64     `gorm:"not null;default:0" json:"points"`
	TotalSpent     float64   `gorm:"not null;default:0" json:"total_spent"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

type LoyaltyRule struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	ConditionType  string    `gorm:"type:varchar(50);not null" json:"condition_type"`
	ConditionValue float64   `gorm:"not null" json:"condition_value"`
	RewardType     string    `gorm:"type:varchar(50);not null" json:"reward_type"`
	RewardValue    string    `gorm:"type:varchar(255);not null" json:"reward_value"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
