package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"zeddream-backend/internal/models"
)

// AdminService backs the admin dashboard.
type AdminService struct {
	db      *gorm.DB
	loyalty *LoyaltyService
}

// NewAdminService creates a new AdminService
func NewAdminService(db *gorm.DB, loyalty *LoyaltyService) *AdminService {
	return &AdminService{db: db, loyalty: loyalty}
}

// GetUsers returns all accounts, newest first.
func (s *AdminService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserPoints sets a user's balance to an absolute value through the points
// engine, so the change is recorded in the ledger like any other mutation.
func (s *AdminService) SetUserPoints(userID uint, points int) (*models.User, error) {
	return s.loyalty.AdjustBalance(userID, points)
}

// Analytics aggregates the dashboard numbers.
type Analytics struct {
	TotalUsers     int64            `json:"total_users"`
	TotalProducts  int64            `json:"total_products"`
	TotalOrders    int64            `json:"total_orders"`
	TotalRevenue   decimal.Decimal  `json:"total_revenue"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
}

// GetAnalytics computes the dashboard aggregates.
func (s *AdminService) GetAnalytics() (*Analytics, error) {
	a := &Analytics{
		TotalRevenue:   decimal.Zero,
		OrdersByStatus: make(map[string]int64),
	}

	if err := s.db.Model(&models.User{}).Where("role = ?", "user").Count(&a.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).Count(&a.TotalProducts).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := s.db.Find(&orders).Error; err != nil {
		return nil, err
	}

	a.TotalOrders = int64(len(orders))
	for _, order := range orders {
		a.TotalRevenue = a.TotalRevenue.Add(order.TotalPrice)
		a.OrdersByStatus[order.Status]++
	}

	return a, nil
}
