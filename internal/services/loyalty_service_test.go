package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zeddream-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.PointTransaction{},
		&models.Reward{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.SavedTryOn{},
		&models.Hero{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	cleanTables(db)
	return db
}

// cleanTables wipes the shared in-memory database between tests.
func cleanTables(db *gorm.DB) {
	db.Exec("DELETE FROM point_transactions")
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM saved_try_ons")
	db.Exec("DELETE FROM rewards")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM heroes")
	db.Exec("DELETE FROM users")
}

var testInviteSeq int

func createTestUser(t *testing.T, db *gorm.DB, email string, balance int) *models.User {
	t.Helper()

	testInviteSeq++
	user := models.User{
		Name:          "Test User",
		Email:         email,
		Password:      "hashed",
		Role:          "user",
		PointsBalance: balance,
		InviteCode:    fmt.Sprintf("TST%03d", testInviteSeq),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	// Balance granted out of band for test setup still needs a ledger entry,
	// otherwise the sum-equals-balance checks below would trip on fixtures.
	if balance != 0 {
		if err := db.Create(&models.PointTransaction{
			UserID:      user.ID,
			Amount:      balance,
			Description: "test fixture",
		}).Error; err != nil {
			t.Fatalf("failed to create fixture ledger entry: %v", err)
		}
	}
	return &user
}

func ledgerSum(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()

	var sum *int
	if err := db.Model(&models.PointTransaction{}).
		Where("user_id = ?", userID).
		Select("SUM(amount)").
		Scan(&sum).Error; err != nil {
		t.Fatalf("failed to sum ledger: %v", err)
	}
	if sum == nil {
		return 0
	}
	return *sum
}

func currentBalance(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	return user.PointsBalance
}

func TestRedeemReward(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "redeem@test.com", 200)

	reward := models.Reward{Title: "Free Shipping", Subtitle: "No minimum", CostPoints: 150, IsActive: true}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("failed to create reward: %v", err)
	}

	got, newBalance, err := service.RedeemReward(user.ID, reward.ID)
	if err != nil {
		t.Fatalf("RedeemReward failed: %v", err)
	}
	if got.Title != "Free Shipping" {
		t.Errorf("expected reward Free Shipping, got %s", got.Title)
	}
	if newBalance != 50 {
		t.Errorf("expected new balance 50, got %d", newBalance)
	}
	if sum := ledgerSum(t, db, user.ID); sum != 50 {
		t.Errorf("ledger sum: expected 50, got %d", sum)
	}
}

func TestRedeemRewardInsufficientPoints(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "poor@test.com", 40)

	reward := models.Reward{Title: "$20 Voucher", Subtitle: "Accessories", CostPoints: 300, IsActive: true}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("failed to create reward: %v", err)
	}

	_, _, err := service.RedeemReward(user.ID, reward.ID)
	if err != ErrInsufficientPoints {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}

	// Failed redemption must leave both balance and ledger untouched.
	if balance := currentBalance(t, db, user.ID); balance != 40 {
		t.Errorf("balance changed on failed redemption: got %d", balance)
	}
	if sum := ledgerSum(t, db, user.ID); sum != 40 {
		t.Errorf("ledger changed on failed redemption: got %d", sum)
	}
}

func TestRedeemRewardNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "noreward@test.com", 500)

	_, _, err := service.RedeemReward(user.ID, 999)
	if err != ErrRewardNotFound {
		t.Fatalf("expected ErrRewardNotFound, got %v", err)
	}
}

func TestClaimProfileBonusOnce(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "profile@test.com", 0)

	newBalance, err := service.ClaimProfileBonus(user.ID)
	if err != nil {
		t.Fatalf("ClaimProfileBonus failed: %v", err)
	}
	if newBalance != ProfileBonusPoints {
		t.Errorf("expected balance %d, got %d", ProfileBonusPoints, newBalance)
	}

	_, err = service.ClaimProfileBonus(user.ID)
	if err != ErrAlreadyClaimed {
		t.Fatalf("expected ErrAlreadyClaimed on second claim, got %v", err)
	}

	if balance := currentBalance(t, db, user.ID); balance != ProfileBonusPoints {
		t.Errorf("second claim changed the balance: got %d", balance)
	}
	if sum := ledgerSum(t, db, user.ID); sum != ProfileBonusPoints {
		t.Errorf("expected one ledger entry of %d, sum is %d", ProfileBonusPoints, sum)
	}
}

func TestDebitTryOnAllowsNegativeBalance(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "broke@test.com", 0)

	if err := service.DebitTryOn(user.ID); err != nil {
		t.Fatalf("DebitTryOn failed: %v", err)
	}

	if balance := currentBalance(t, db, user.ID); balance != -TryOnCostPoints {
		t.Errorf("expected balance %d, got %d", -TryOnCostPoints, balance)
	}
	if sum := ledgerSum(t, db, user.ID); sum != -TryOnCostPoints {
		t.Errorf("expected ledger sum %d, got %d", -TryOnCostPoints, sum)
	}

	var fresh models.User
	db.Where("id = ?", user.ID).First(&fresh)
	if !fresh.FirstTryOn {
		t.Error("expected first_try_on flag to flip on first generation")
	}
}

func TestAdjustBalanceRecordsDelta(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "adjust@test.com", 120)

	updated, err := service.AdjustBalance(user.ID, 500)
	if err != nil {
		t.Fatalf("AdjustBalance failed: %v", err)
	}
	if updated.PointsBalance != 500 {
		t.Errorf("expected balance 500, got %d", updated.PointsBalance)
	}
	if sum := ledgerSum(t, db, user.ID); sum != 500 {
		t.Errorf("expected ledger sum 500, got %d", sum)
	}

	var entry models.PointTransaction
	if err := db.Where("user_id = ? AND description = ?", user.ID, "Balance adjusted by admin").
		First(&entry).Error; err != nil {
		t.Fatalf("expected an admin adjustment ledger entry: %v", err)
	}
	if entry.Amount != 380 {
		t.Errorf("expected adjustment delta 380, got %d", entry.Amount)
	}
}

func TestGetRewardsSeedsDefaults(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	rewards, err := service.GetRewards()
	if err != nil {
		t.Fatalf("GetRewards failed: %v", err)
	}
	if len(rewards) != len(defaultRewards) {
		t.Fatalf("expected %d seeded rewards, got %d", len(defaultRewards), len(rewards))
	}

	// Second call returns the persisted catalog without reseeding.
	again, err := service.GetRewards()
	if err != nil {
		t.Fatalf("GetRewards failed on second call: %v", err)
	}
	if len(again) != len(defaultRewards) {
		t.Errorf("expected %d rewards after reseed check, got %d", len(defaultRewards), len(again))
	}
}

func TestBalanceMatchesLedgerAfterMixedOperations(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "mixed@test.com", 100)

	if _, err := service.ClaimProfileBonus(user.ID); err != nil {
		t.Fatalf("ClaimProfileBonus failed: %v", err)
	}
	if err := service.AwardReview(user.ID, "Elegant Maxi Dress"); err != nil {
		t.Fatalf("AwardReview failed: %v", err)
	}
	if err := service.DebitTryOn(user.ID); err != nil {
		t.Fatalf("DebitTryOn failed: %v", err)
	}
	if err := service.DebitTryOn(user.ID); err != nil {
		t.Fatalf("second DebitTryOn failed: %v", err)
	}

	want := 100 + ProfileBonusPoints + ReviewPoints - 2*TryOnCostPoints
	if balance := currentBalance(t, db, user.ID); balance != want {
		t.Errorf("expected balance %d, got %d", want, balance)
	}
	if sum := ledgerSum(t, db, user.ID); sum != currentBalance(t, db, user.ID) {
		t.Errorf("ledger sum %d does not match balance %d", sum, currentBalance(t, db, user.ID))
	}
}

func TestConcurrentRedemptionsNeverOverspend(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "race@test.com", 500)

	reward := models.Reward{Title: "10% OFF", Subtitle: "Next order", CostPoints: 100, IsActive: true}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("failed to create reward: %v", err)
	}

	// 10 racing redemptions against a balance that covers exactly 5.
	const attempts = 10
	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := service.RedeemReward(user.ID, reward.ID)
			switch err {
			case nil:
				atomic.AddInt64(&successes, 1)
			case ErrInsufficientPoints:
			default:
				t.Errorf("unexpected redemption error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 5 {
		t.Errorf("expected exactly 5 successful redemptions, got %d", successes)
	}
	if balance := currentBalance(t, db, user.ID); balance != 0 {
		t.Errorf("expected final balance 0, got %d", balance)
	}
	if sum := ledgerSum(t, db, user.ID); sum != 0 {
		t.Errorf("expected ledger sum 0, got %d", sum)
	}

	var entries int64
	db.Model(&models.PointTransaction{}).
		Where("user_id = ? AND amount = ?", user.ID, -100).
		Count(&entries)
	if entries != 5 {
		t.Errorf("expected 5 redemption ledger entries, got %d", entries)
	}
}

func TestConcurrentProfileBonusClaimsPayOnce(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "raceclaim@test.com", 0)

	const attempts = 8
	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.ClaimProfileBonus(user.ID)
			switch err {
			case nil:
				atomic.AddInt64(&successes, 1)
			case ErrAlreadyClaimed:
			default:
				t.Errorf("unexpected claim error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly 1 successful claim, got %d", successes)
	}
	if balance := currentBalance(t, db, user.ID); balance != ProfileBonusPoints {
		t.Errorf("expected balance %d, got %d", ProfileBonusPoints, balance)
	}
	if sum := ledgerSum(t, db, user.ID); sum != ProfileBonusPoints {
		t.Errorf("expected ledger sum %d, got %d", ProfileBonusPoints, sum)
	}
}

func TestGetBalanceReturnsHistory(t *testing.T) {
	db := setupTestDB(t)
	service := NewLoyaltyService(db)

	user := createTestUser(t, db, "history@test.com", 60)
	if err := service.AwardReview(user.ID, "Silk Hijab"); err != nil {
		t.Fatalf("AwardReview failed: %v", err)
	}

	balance, history, err := service.GetBalance(user.ID)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance != 60+ReviewPoints {
		t.Errorf("expected balance %d, got %d", 60+ReviewPoints, balance)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 ledger entries, got %d", len(history))
	}

	_, _, err = service.GetBalance(99999)
	if err != ErrAccountNotFound {
		t.Errorf("expected ErrAccountNotFound for missing user, got %v", err)
	}
}
