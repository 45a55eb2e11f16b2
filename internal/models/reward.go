package models

import (
	"time"
)

// Reward is a catalog item redeemable for a fixed point cost.
type Reward struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Subtitle   string    `gorm:"not null" json:"subtitle"`
	CostPoints int       `gorm:"not null" json:"cost_points"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for Reward model
func (Reward) TableName() string {
	return "rewards"
}
