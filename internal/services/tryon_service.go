package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"zeddream-backend/internal/models"
)

// TryOnGenerator produces a try-on image URL from a user photo and a garment
// image. Satisfied by replicate.Client.
type TryOnGenerator interface {
	GenerateTryOn(ctx context.Context, userImage, clothImage string) (string, error)
}

// TryOnService proxies virtual try-on generation and charges points for it.
type TryOnService struct {
	db        *gorm.DB
	loyalty   *LoyaltyService
	generator TryOnGenerator
}

// NewTryOnService creates a new TryOnService
func NewTryOnService(db *gorm.DB, loyalty *LoyaltyService, generator TryOnGenerator) *TryOnService {
	return &TryOnService{db: db, loyalty: loyalty, generator: generator}
}

// Generate runs the try-on model. Points are debited only after the generation
// succeeds: a failed generation must never cost the user anything.
func (s *TryOnService) Generate(ctx context.Context, userID uint, userImage, clothImage string) (string, error) {
	if userImage == "" {
		return "", fmt.Errorf("please upload an image or provide a URL")
	}
	if clothImage == "" {
		return "", fmt.Errorf("cloth image URL is required")
	}

	generated, err := s.generator.GenerateTryOn(ctx, userImage, clothImage)
	if err != nil {
		return "", err
	}

	if err := s.loyalty.DebitTryOn(userID); err != nil {
		return "", err
	}

	log.Printf("Try-on generated for user %d", userID)
	return generated, nil
}

// SaveLook persists a generated look.
func (s *TryOnService) SaveLook(userID uint, generatedImage, originalImage, productImage string) (*models.SavedTryOn, error) {
	if generatedImage == "" {
		return nil, fmt.Errorf("generated image URL is required")
	}

	look := models.SavedTryOn{
		UserID:         userID,
		GeneratedImage: generatedImage,
		OriginalImage:  originalImage,
		ProductImage:   productImage,
	}

	if err := s.db.Create(&look).Error; err != nil {
		return nil, err
	}

	return &look, nil
}

// DeleteLook removes a saved look. Only the owner may delete it.
func (s *TryOnService) DeleteLook(userID, lookID uint) error {
	var look models.SavedTryOn
	if err := s.db.Where("id = ?", lookID).First(&look).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLookNotFound
		}
		return err
	}

	if look.UserID != userID {
		return ErrNotOwner
	}

	return s.db.Delete(&look).Error
}

// ListSaved returns the user's saved looks, newest first.
func (s *TryOnService) ListSaved(userID uint) ([]models.SavedTryOn, error) {
	var looks []models.SavedTryOn
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&looks).Error; err != nil {
		return nil, err
	}
	return looks, nil
}
