package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"zeddream-backend/internal/models"
)

func placeTestOrder(t *testing.T, service *OrderService, userID uint) *models.Order {
	t.Helper()

	order, err := service.Create(userID, CreateOrderInput{
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Elegant Maxi Dress", Quantity: 1, Price: decimal.RequireFromString("89.99")},
		},
		ShippingAddress: models.ShippingAddress{
			Address:    "12 Palm Street",
			City:       "Dubai",
			PostalCode: "00000",
			Country:    "UAE",
		},
		TotalPrice: decimal.RequireFromString("89.99"),
	})
	if err != nil {
		t.Fatalf("Create order failed: %v", err)
	}
	return order
}

func TestCreateOrderDefaults(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewOrderService(db, loyalty)

	user := createTestUser(t, db, "order@test.com", 0)
	order := placeTestOrder(t, service, user.ID)

	if order.Status != models.StatusPreparing {
		t.Errorf("expected status Preparing, got %s", order.Status)
	}
	if !order.IsPaid || order.PaidAt == nil {
		t.Error("expected order to be marked paid at checkout")
	}
	if order.PaymentMethod != "Card" {
		t.Errorf("expected default payment method Card, got %s", order.PaymentMethod)
	}
	if order.QRCode == "" {
		t.Error("expected a QR token on the new order")
	}
	if order.TrackingNumber == "" {
		t.Error("expected a tracking number on the new order")
	}
}

func TestScanQRAwardsDeliveryPointsOnce(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewOrderService(db, loyalty)

	user := createTestUser(t, db, "scan@test.com", 0)
	order := placeTestOrder(t, service, user.ID)

	scanned, err := service.ScanQR(user.ID, order.QRCode)
	if err != nil {
		t.Fatalf("ScanQR failed: %v", err)
	}
	if scanned.Status != models.StatusDelivered {
		t.Errorf("expected status Delivered after scan, got %s", scanned.Status)
	}
	if !scanned.IsQrScanned {
		t.Error("expected is_qr_scanned true after scan")
	}
	if balance := currentBalance(t, db, user.ID); balance != DeliveryConfirmPoints {
		t.Errorf("expected balance %d after scan, got %d", DeliveryConfirmPoints, balance)
	}

	// Second scan of the same code must not pay out again.
	if _, err := service.ScanQR(user.ID, order.QRCode); err != ErrAlreadyScanned {
		t.Fatalf("expected ErrAlreadyScanned, got %v", err)
	}
	if balance := currentBalance(t, db, user.ID); balance != DeliveryConfirmPoints {
		t.Errorf("double scan changed the balance: got %d", balance)
	}
	if sum := ledgerSum(t, db, user.ID); sum != DeliveryConfirmPoints {
		t.Errorf("double scan changed the ledger: got %d", sum)
	}
}

func TestScanQRRejectsWrongOwner(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewOrderService(db, loyalty)

	owner := createTestUser(t, db, "owner@test.com", 0)
	stranger := createTestUser(t, db, "stranger@test.com", 0)
	order := placeTestOrder(t, service, owner.ID)

	if _, err := service.ScanQR(stranger.ID, order.QRCode); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if balance := currentBalance(t, db, stranger.ID); balance != 0 {
		t.Errorf("stranger balance changed: got %d", balance)
	}
}

func TestScanQRUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewOrderService(db, loyalty)

	user := createTestUser(t, db, "unknown@test.com", 0)

	if _, err := service.ScanQR(user.ID, "not-a-real-token"); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestReferralBonusFiresOnFirstConfirmedOrderOnly(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewOrderService(db, loyalty)

	referrer := createTestUser(t, db, "inviter@test.com", 0)
	invited := createTestUser(t, db, "friend@test.com", 0)
	if err := db.Model(&models.User{}).
		Where("id = ?", invited.ID).
		Update("invited_by_id", referrer.ID).Error; err != nil {
		t.Fatalf("failed to link referrer: %v", err)
	}

	first := placeTestOrder(t, service, invited.ID)
	second := placeTestOrder(t, service, invited.ID)

	if _, err := service.ScanQR(invited.ID, first.QRCode); err != nil {
		t.Fatalf("first ScanQR failed: %v", err)
	}

	if balance := currentBalance(t, db, referrer.ID); balance != FirstOrderReferralPoints {
		t.Errorf("expected referrer balance %d after first order, got %d", FirstOrderReferralPoints, balance)
	}

	if _, err := service.ScanQR(invited.ID, second.QRCode); err != nil {
		t.Fatalf("second ScanQR failed: %v", err)
	}

	// Only the first confirmed order pays the referrer.
	if balance := currentBalance(t, db, referrer.ID); balance != FirstOrderReferralPoints {
		t.Errorf("second order paid the referrer again: got %d", balance)
	}
	if balance := currentBalance(t, db, invited.ID); balance != 2*DeliveryConfirmPoints {
		t.Errorf("expected invited balance %d, got %d", 2*DeliveryConfirmPoints, balance)
	}
}

func TestScanQRWithoutReferrerPaysOnlyDelivery(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewOrderService(db, loyalty)

	user := createTestUser(t, db, "solo@test.com", 0)
	order := placeTestOrder(t, service, user.ID)

	if _, err := service.ScanQR(user.ID, order.QRCode); err != nil {
		t.Fatalf("ScanQR failed: %v", err)
	}
	if balance := currentBalance(t, db, user.ID); balance != DeliveryConfirmPoints {
		t.Errorf("expected balance %d, got %d", DeliveryConfirmPoints, balance)
	}
}

func TestRegisterReferAndScanScenario(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	authService := NewAuthService(db, loyalty)
	orderService := NewOrderService(db, loyalty)

	referrer, err := authService.Register("Referrer", "chain-ref@test.com", "secret123", "")
	if err != nil {
		t.Fatalf("Register referrer failed: %v", err)
	}
	invited, err := authService.Register("Invited", "chain-inv@test.com", "secret123", referrer.InviteCode)
	if err != nil {
		t.Fatalf("Register invited failed: %v", err)
	}

	order := placeTestOrder(t, orderService, invited.ID)
	if _, err := orderService.ScanQR(invited.ID, order.QRCode); err != nil {
		t.Fatalf("ScanQR failed: %v", err)
	}

	// Referrer: signup + referral signup + first-order referral.
	wantReferrer := SignupBonusPoints + ReferralSignupPoints + FirstOrderReferralPoints
	if balance := currentBalance(t, db, referrer.ID); balance != wantReferrer {
		t.Errorf("referrer balance: expected %d, got %d", wantReferrer, balance)
	}

	// Invited: signup + delivery confirmation.
	wantInvited := SignupBonusPoints + DeliveryConfirmPoints
	if balance := currentBalance(t, db, invited.ID); balance != wantInvited {
		t.Errorf("invited balance: expected %d, got %d", wantInvited, balance)
	}

	// Every balance in the chain must equal its ledger sum.
	for _, id := range []uint{referrer.ID, invited.ID} {
		if sum := ledgerSum(t, db, id); sum != currentBalance(t, db, id) {
			t.Errorf("user %d: ledger sum %d does not match balance", id, sum)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewOrderService(db, loyalty)

	user := createTestUser(t, db, "status@test.com", 0)
	order := placeTestOrder(t, service, user.ID)

	updated, err := service.UpdateStatus(order.ID, models.StatusShipped, "TRK-5555")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusShipped {
		t.Errorf("expected status Shipped, got %s", updated.Status)
	}
	if updated.TrackingNumber != "TRK-5555" {
		t.Errorf("expected tracking TRK-5555, got %s", updated.TrackingNumber)
	}

	if _, err := service.UpdateStatus(order.ID, "Teleported", ""); err == nil {
		t.Error("expected an error for an unknown status")
	}

	if _, err := service.UpdateStatus(99999, models.StatusShipped, ""); err != ErrOrderNotFound {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
