package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"zeddream-backend/internal/models"
	"zeddream-backend/internal/utils"
)

// OrderService owns the order lifecycle and the QR delivery-confirmation flow.
type OrderService struct {
	db      *gorm.DB
	loyalty *LoyaltyService
}

// NewOrderService creates a new OrderService
func NewOrderService(db *gorm.DB, loyalty *LoyaltyService) *OrderService {
	return &OrderService{db: db, loyalty: loyalty}
}

// CreateOrderInput carries the checkout payload.
type CreateOrderInput struct {
	Items           []models.OrderItem
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	TotalPrice      decimal.Decimal
}

// Create places an order. Payment is assumed captured at checkout; the order
// starts in Preparing with a fresh tracking number and QR token.
func (s *OrderService) Create(userID uint, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("no order items")
	}

	tracking, err := utils.GenerateTrackingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := models.Order{
		UserID:          userID,
		OrderItems:      in.Items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		TotalPrice:      in.TotalPrice,
		IsPaid:          true,
		PaidAt:          &now,
		Status:          models.StatusPreparing,
		TrackingNumber:  tracking,
		QRCode:          utils.GenerateQRToken(),
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "Card"
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}

	log.Printf("Order %d created for user %d (%s)", order.ID, userID, tracking)
	return &order, nil
}

// GetMyOrders returns the user's orders, newest first.
func (s *OrderService) GetMyOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).
		Preload("OrderItems").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID returns one order with its items and owner.
func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("id = ?", orderID).
		Preload("OrderItems").
		Preload("User").
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ScanQR confirms delivery from a scanned QR token and pays out points.
//
// The scan is a one-shot gate: a compare-and-set on is_qr_scanned guarantees
// the +200 award fires at most once per order. The order transition, the
// delivery award, and (on the first confirmed order) the referrer's +150 all
// commit in a single transaction.
func (s *OrderService) ScanQR(userID uint, qrCode string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("qr_code = ?", qrCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != userID {
		return nil, ErrNotOwner
	}

	s.loyalty.Lock()
	defer s.loyalty.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND is_qr_scanned = ?", order.ID, false).
			Updates(map[string]interface{}{
				"is_qr_scanned": true,
				"status":        models.StatusDelivered,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyScanned
		}

		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		desc := fmt.Sprintf("Order successfully delivered (Order #%d)", order.ID)
		if err := s.loyalty.ApplyTx(tx, userID, DeliveryConfirmPoints, desc); err != nil {
			return err
		}

		// Referral bonus fires only on the user's first confirmed order. The
		// count includes the row updated above, so exactly-one means first.
		var scanned int64
		if err := tx.Model(&models.Order{}).
			Where("user_id = ? AND is_qr_scanned = ?", userID, true).
			Count(&scanned).Error; err != nil {
			return err
		}

		if scanned == 1 && user.InvitedByID != nil {
			var referrer models.User
			if err := tx.Where("id = ?", *user.InvitedByID).First(&referrer).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil // referrer gone, skip the bonus
				}
				return err
			}

			desc := fmt.Sprintf("Referral Bonus: %s placed first order", user.Name)
			if err := s.loyalty.ApplyTx(tx, referrer.ID, FirstOrderReferralPoints, desc); err != nil {
				return err
			}
			log.Printf("Referral bonus paid to user %d for first order of user %d", referrer.ID, userID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.IsQrScanned = true
	order.Status = models.StatusDelivered
	log.Printf("Order %d confirmed delivered by QR scan (user %d)", order.ID, userID)
	return &order, nil
}

// ListAll returns every order for the staff dashboard, newest first.
func (s *OrderService) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("OrderItems").
		Preload("User").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus lets staff move an order through the delivery pipeline or cancel
// it, and fix up the tracking number.
func (s *OrderService) UpdateStatus(orderID uint, status, trackingNumber string) (*models.Order, error) {
	order, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if status != "" {
		if !models.ValidOrderStatus(status) {
			return nil, fmt.Errorf("invalid order status %q", status)
		}
		updates["status"] = status
	}
	if trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
	}

	if len(updates) > 0 {
		if err := s.db.Model(order).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return order, nil
}
