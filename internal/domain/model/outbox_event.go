package model

import "time"

const EventTypeOrderCompleted = "order.completed"

// 確定した売上の未配信イベント。注文と同一トランザクションで書く。
// published_atがnullの間は再送対象。
type OutboxEvent struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	AggregateID int64      `gorm:"not null;index" json:"aggregate_id"`
	EventType   string     `gorm:"type:varchar(50);not null" json:"event_type"`
	Payload     string     `gorm:"type:text;not null" json:"payload"`
	Attempts    int        `gorm:"not null;default:0" json:"attempts"`
	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
