package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item.
type Product struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	CategoryID    uint             `gorm:"not null;index" json:"category_id"`
	Category      *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"original_price,omitempty"`
	Image         string           `gorm:"default:no-photo.jpg" json:"image"`
	Images        string           `json:"images"` // comma-separated URLs
	Sizes         string           `json:"sizes"`  // comma-separated, e.g. "S,M,L"
	Colors        string           `json:"colors"`
	Rating        float64          `json:"rating"`
	Reviews       int              `gorm:"default:0" json:"reviews"`
	IsNewArrival  bool             `gorm:"default:false" json:"is_new_arrival"`
	Discount      string           `gorm:"size:20" json:"discount,omitempty"` // e.g. "20% OFF"
	CreatedAt     time.Time        `json:"created_at"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "products"
}

// Category groups products.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}
