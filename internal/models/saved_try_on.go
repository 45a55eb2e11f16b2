package models

import (
	"time"
)

// SavedTryOn is a generated virtual try-on look the user chose to keep.
type SavedTryOn struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GeneratedImage string    `gorm:"not null" json:"generated_image"`
	OriginalImage  string    `json:"original_image"`
	ProductImage   string    `json:"product_image"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for SavedTryOn model
func (SavedTryOn) TableName() string {
	return "saved_try_ons"
}
