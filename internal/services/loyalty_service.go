package services

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"gorm.io/gorm"

	"zeddream-backend/internal/models"
)

// Point amounts for every balance-changing operation.
const (
	SignupBonusPoints        = 50
	ReferralSignupPoints     = 100
	DeliveryConfirmPoints    = 200
	FirstOrderReferralPoints = 150
	ProfileBonusPoints       = 30
	ReviewPoints             = 40
	TryOnCostPoints          = 20
)

var defaultRewards = []models.Reward{
	{Title: "10% OFF", Subtitle: "On your next order", CostPoints: 100, IsActive: true},
	{Title: "Free Shipping", Subtitle: "No minimum spent", CostPoints: 150, IsActive: true},
	{Title: "$20 Voucher", Subtitle: "For accessories", CostPoints: 300, IsActive: true},
}

// LoyaltyService is the points engine. Every balance change goes through apply:
// an atomic in-place UPDATE of users.points_balance paired with one
// point_transactions INSERT, inside a single database transaction. The mutex
// serializes mutations within this process; the conditional UPDATEs keep the
// engine correct even across processes.
type LoyaltyService struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewLoyaltyService creates a new LoyaltyService
func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{db: db}
}

// apply credits (or debits, for negative amounts) a user and appends the
// matching ledger entry. Must be called inside a transaction.
func (s *LoyaltyService) apply(tx *gorm.DB, userID uint, amount int, description string) error {
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("points_balance", gorm.Expr("points_balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return tx.Create(&models.PointTransaction{
		UserID:      userID,
		Amount:      amount,
		Description: description,
	}).Error
}

// ApplyTx exposes apply to sibling services (registration, QR scan) that need a
// point change inside their own transaction.
func (s *LoyaltyService) ApplyTx(tx *gorm.DB, userID uint, amount int, description string) error {
	return s.apply(tx, userID, amount, description)
}

// GetBalance returns a user's balance and full ledger history, newest first.
func (s *LoyaltyService) GetBalance(userID uint) (int, []models.PointTransaction, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrAccountNotFound
		}
		return 0, nil, err
	}

	var history []models.PointTransaction
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&history).Error; err != nil {
		return 0, nil, err
	}

	return user.PointsBalance, history, nil
}

// GetRewards returns the active reward catalog, seeding the demo rewards when
// the catalog is empty.
func (s *LoyaltyService) GetRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	if err := s.db.Where("is_active = ?", true).Find(&rewards).Error; err != nil {
		return nil, err
	}

	if len(rewards) == 0 {
		seeded := make([]models.Reward, len(defaultRewards))
		copy(seeded, defaultRewards)
		if err := s.db.Create(&seeded).Error; err != nil {
			return nil, err
		}
		log.Println("Seeded default reward catalog")
		return seeded, nil
	}

	return rewards, nil
}

// RedeemReward deducts a reward's cost from the user's balance. The decrement
// is conditional on sufficiency, so two racing redemptions can never spend the
// same points twice.
func (s *LoyaltyService) RedeemReward(userID uint, rewardID uint) (*models.Reward, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reward models.Reward
	if err := s.db.Where("id = ? AND is_active = ?", rewardID, true).First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrRewardNotFound
		}
		return nil, 0, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND points_balance >= ?", userID, reward.CostPoints).
			Update("points_balance", gorm.Expr("points_balance - ?", reward.CostPoints))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the account is missing or the balance is short.
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrAccountNotFound
			}
			return ErrInsufficientPoints
		}

		return tx.Create(&models.PointTransaction{
			UserID:      userID,
			Amount:      -reward.CostPoints,
			Description: fmt.Sprintf("Redeemed %s", reward.Title),
		}).Error
	})
	if err != nil {
		return nil, 0, err
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, 0, err
	}

	log.Printf("User %d redeemed reward %q for %d points", userID, reward.Title, reward.CostPoints)
	return &reward, user.PointsBalance, nil
}

// ClaimProfileBonus awards the one-time profile completion bonus. The flag flip
// is a compare-and-set, so the bonus can be claimed at most once.
func (s *LoyaltyService) ClaimProfileBonus(userID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND profile_completed = ?", userID, false).
			Updates(map[string]interface{}{
				"profile_completed": true,
				"points_balance":    gorm.Expr("points_balance + ?", ProfileBonusPoints),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrAccountNotFound
			}
			return ErrAlreadyClaimed
		}

		return tx.Create(&models.PointTransaction{
			UserID:      userID,
			Amount:      ProfileBonusPoints,
			Description: "Profile Completed Bonus",
		}).Error
	})
	if err != nil {
		return 0, err
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return 0, err
	}

	return user.PointsBalance, nil
}

// AwardReview credits the review bonus. No duplicate-review gate: the product
// side decides whether the review itself is accepted.
func (s *LoyaltyService) AwardReview(userID uint, productName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.apply(tx, userID, ReviewPoints, fmt.Sprintf("Reviewed product: %s", productName))
	})
}

// DebitTryOn charges for a successful try-on generation. There is deliberately
// no balance floor here: the source product allows the balance to go negative,
// and flooring it is a product decision, not ours.
func (s *LoyaltyService) DebitTryOn(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.apply(tx, userID, -TryOnCostPoints, "Try-On generated"); err != nil {
			return err
		}

		// First generation also flips the one-time checklist flag.
		return tx.Model(&models.User{}).
			Where("id = ? AND first_try_on = ?", userID, false).
			Update("first_try_on", true).Error
	})
}

// AdjustBalance sets a user's balance to an absolute value and records the
// delta in the ledger. Admin use only.
func (s *LoyaltyService) AdjustBalance(userID uint, newBalance int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		delta := newBalance - user.PointsBalance
		if delta == 0 {
			return nil
		}

		if err := s.apply(tx, userID, delta, "Balance adjusted by admin"); err != nil {
			return err
		}

		user.PointsBalance = newBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Admin set balance of user %d to %d", userID, newBalance)
	return &user, nil
}

// Lock serializes a composite operation (registration, QR scan) with the rest
// of the engine. Callers must Unlock.
func (s *LoyaltyService) Lock()   { s.mu.Lock() }
func (s *LoyaltyService) Unlock() { s.mu.Unlock() }
