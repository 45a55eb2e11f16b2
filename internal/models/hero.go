package models

import (
	"time"
)

// Hero is a home-screen banner slide.
type Hero struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Subtitle  string    `gorm:"not null" json:"subtitle"`
	Image     string    `gorm:"not null" json:"image"`
	CtaText   string    `gorm:"default:Shop Collection" json:"cta_text"`
	LinkType  string    `gorm:"size:20;default:none" json:"link_type"` // product, category, external, none
	LinkValue string    `json:"link_value"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Order     int       `gorm:"column:display_order;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Hero model
func (Hero) TableName() string {
	return "heroes"
}
