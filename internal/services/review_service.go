package services

import (
	"errors"

	"gorm.io/gorm"

	"zeddream-backend/internal/models"
)

// ReviewService stores product reviews and triggers the review bonus.
type ReviewService struct {
	db      *gorm.DB
	loyalty *LoyaltyService
}

// NewReviewService creates a new ReviewService
func NewReviewService(db *gorm.DB, loyalty *LoyaltyService) *ReviewService {
	return &ReviewService{db: db, loyalty: loyalty}
}

// AddReview records a review and credits the review bonus. Duplicate reviews
// from the same user are accepted and each earns points; the product team has
// not asked for a one-review cap yet.
func (s *ReviewService) AddReview(userID, productID uint, rating int, comment string) (*models.Review, error) {
	var product models.Product
	if err := s.db.Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review := models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}

	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}

	// Keep the product's review counter roughly in sync. Not part of the
	// loyalty unit: a miscount here never corrupts the ledger.
	s.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("reviews", gorm.Expr("reviews + 1"))

	if err := s.loyalty.AwardReview(userID, product.Name); err != nil {
		return nil, err
	}

	return &review, nil
}

// ListForProduct returns reviews for a product, newest first.
func (s *ReviewService) ListForProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
