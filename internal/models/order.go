package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. A QR scan jumps any non-terminal status straight to
// StatusDelivered: scanning the code is itself the delivery proof.
const (
	StatusPreparing      = "Preparing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case StatusPreparing, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is embedded into Order.
type ShippingAddress struct {
	Address    string `gorm:"not null" json:"address"`
	City       string `gorm:"not null" json:"city"`
	PostalCode string `gorm:"not null" json:"postal_code"`
	Country    string `gorm:"not null" json:"country"`
}

// Order represents a customer order. QRCode holds the one-shot delivery
// confirmation token; IsQrScanned is write-once true.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod   string          `gorm:"size:30;default:Card" json:"payment_method"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	IsPaid          bool            `gorm:"default:false" json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	Status          string          `gorm:"size:20;default:Preparing" json:"status"`
	TrackingNumber  string          `gorm:"size:20" json:"tracking_number"`
	QRCode          string          `gorm:"uniqueIndex;size:64" json:"qr_code"`
	IsQrScanned     bool            `gorm:"default:false" json:"is_qr_scanned"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single line of an order, denormalized so the order keeps the
// name/price the customer actually saw.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Size      string          `gorm:"size:10" json:"size,omitempty"`
	Color     string          `gorm:"size:30" json:"color,omitempty"`
}

// TableName specifies the table name for OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
