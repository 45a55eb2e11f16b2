package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"zeddream-backend/internal/models"
)

func TestAddReviewAwardsPoints(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewReviewService(db, loyalty)

	user := createTestUser(t, db, "reviewer@test.com", 0)

	category := models.Category{Name: "Dresses", Slug: "dresses"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	product := models.Product{
		Name:       "Elegant Maxi Dress",
		CategoryID: category.ID,
		Price:      decimal.RequireFromString("89.99"),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	review, err := service.AddReview(user.ID, product.ID, 5, "Beautiful fabric")
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if review.Rating != 5 {
		t.Errorf("expected rating 5, got %d", review.Rating)
	}

	if balance := currentBalance(t, db, user.ID); balance != ReviewPoints {
		t.Errorf("expected balance %d after review, got %d", ReviewPoints, balance)
	}

	var fresh models.Product
	db.Where("id = ?", product.ID).First(&fresh)
	if fresh.Reviews != 1 {
		t.Errorf("expected review counter 1, got %d", fresh.Reviews)
	}
}

func TestAddReviewUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewReviewService(db, loyalty)

	user := createTestUser(t, db, "noproduct@test.com", 0)

	if _, err := service.AddReview(user.ID, 999, 4, "ghost"); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if balance := currentBalance(t, db, user.ID); balance != 0 {
		t.Errorf("failed review changed the balance: got %d", balance)
	}
}

func TestListForProduct(t *testing.T) {
	db := setupTestDB(t)
	loyalty := NewLoyaltyService(db)
	service := NewReviewService(db, loyalty)

	user := createTestUser(t, db, "lister@test.com", 0)

	category := models.Category{Name: "Hijabs", Slug: "hijabs"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	product := models.Product{
		Name:       "Premium Silk Hijab",
		CategoryID: category.ID,
		Price:      decimal.RequireFromString("24.99"),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	if _, err := service.AddReview(user.ID, product.ID, 5, "Soft"); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if _, err := service.AddReview(user.ID, product.ID, 4, "Nice color"); err != nil {
		t.Fatalf("second AddReview failed: %v", err)
	}

	reviews, err := service.ListForProduct(product.ID)
	if err != nil {
		t.Fatalf("ListForProduct failed: %v", err)
	}
	if len(reviews) != 2 {
		t.Errorf("expected 2 reviews, got %d", len(reviews))
	}
}
