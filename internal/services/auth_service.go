package services

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"zeddream-backend/internal/models"
	"zeddream-backend/internal/utils"
)

// AuthService handles registration and login. Registration is also a points
// engine trigger: the signup bonus and the referral-signup bonus commit in the
// same transaction that creates the account.
type AuthService struct {
	db      *gorm.DB
	loyalty *LoyaltyService
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB, loyalty *LoyaltyService) *AuthService {
	return &AuthService{db: db, loyalty: loyalty}
}

// Register creates an account with a fresh invite code and the signup bonus.
// When inviteCode resolves to an existing account, the new account is marked as
// invited by it and the referrer is credited; an unknown code is silently
// ignored so that stale invite links still allow signup.
func (s *AuthService) Register(name, email, password, inviteCode string) (*models.User, error) {
	var existing int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := s.uniqueInviteCode()
	if err != nil {
		return nil, err
	}

	// Resolve the referrer before opening the transaction; invited_by is set
	// once here and never changes.
	var referrer *models.User
	if inviteCode != "" {
		var r models.User
		if err := s.db.Where("invite_code = ?", inviteCode).First(&r).Error; err == nil {
			referrer = &r
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	user := models.User{
		Name:       name,
		Email:      email,
		Password:   string(hashed),
		Role:       "user",
		InviteCode: code,
	}
	if referrer != nil {
		user.InvitedByID = &referrer.ID
	}

	s.loyalty.Lock()
	defer s.loyalty.Unlock()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if err := s.loyalty.ApplyTx(tx, user.ID, SignupBonusPoints, "Sign up bonus"); err != nil {
			return err
		}

		if referrer != nil {
			desc := fmt.Sprintf("Friend invited: %s signed up", name)
			if err := s.loyalty.ApplyTx(tx, referrer.ID, ReferralSignupPoints, desc); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if referrer != nil {
		log.Printf("New user registered: %s (ID: %d), invited by %d", email, user.ID, referrer.ID)
	} else {
		log.Printf("New user registered: %s (ID: %d)", email, user.ID)
	}

	user.PointsBalance = SignupBonusPoints
	return &user, nil
}

// Login checks credentials and returns the account.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

// uniqueInviteCode generates an invite code, retrying on the unlikely collision.
func (s *AuthService) uniqueInviteCode() (string, error) {
	for i := 0; i < 5; i++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			return "", err
		}

		var count int64
		if err := s.db.Model(&models.User{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique invite code")
}
