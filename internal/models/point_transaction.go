package models

import (
	"time"
)

// PointTransaction is a single entry in the loyalty ledger. Positive amounts are
// credits, negative amounts are debits. Entries are append-only: once written they
// are never updated or deleted, and for any user the sum of all entries must equal
// users.points_balance.
type PointTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount      int       `gorm:"not null" json:"amount"`
	Description string    `gorm:"size:255;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for PointTransaction model
func (PointTransaction) TableName() string {
	return "point_transactions"
}
