package model

import "time"

type Supplier struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	RUC         string    `gorm:"type:varchar(20)" json:"ruc"`
	ContactName string    `gorm:"type:varchar(255)" json:"contact_name"`
	Phone       string    `gorm:"type:varchar(30)" json:"phone"`
	Email       string    `gorm:"type:varchar(255)" json:"email"`
	Address     string    `gorm:"type:text" json:"address"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
