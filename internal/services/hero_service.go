package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"zeddream-backend/internal/cache"
	"zeddream-backend/internal/models"
)

const (
	heroCacheKey = "catalog:heroes"
	heroCacheTTL = 5 * time.Minute
)

// HeroService manages the home-screen banner slides.
type HeroService struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewHeroService creates a new HeroService
func NewHeroService(db *gorm.DB, c *cache.Cache) *HeroService {
	return &HeroService{db: db, cache: c}
}

// ListActive returns the active slides in display order, cached.
func (s *HeroService) ListActive(ctx context.Context) ([]models.Hero, error) {
	var cached []models.Hero
	if s.cache.Get(ctx, heroCacheKey, &cached) {
		return cached, nil
	}

	var heroes []models.Hero
	if err := s.db.Where("is_active = ?", true).Order("display_order ASC").Find(&heroes).Error; err != nil {
		return nil, err
	}

	s.cache.Set(ctx, heroCacheKey, heroes, heroCacheTTL)
	return heroes, nil
}

// Create adds a slide.
func (s *HeroService) Create(ctx context.Context, hero *models.Hero) error {
	if err := s.db.Create(hero).Error; err != nil {
		return err
	}
	s.cache.Delete(ctx, heroCacheKey)
	return nil
}

// Update modifies a slide.
func (s *HeroService) Update(ctx context.Context, heroID uint, updates map[string]interface{}) (*models.Hero, error) {
	var hero models.Hero
	if err := s.db.Where("id = ?", heroID).First(&hero).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHeroNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&hero).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, heroCacheKey)
	return &hero, nil
}

// Delete removes a slide.
func (s *HeroService) Delete(ctx context.Context, heroID uint) error {
	res := s.db.Delete(&models.Hero{}, heroID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrHeroNotFound
	}

	s.cache.Delete(ctx, heroCacheKey)
	return nil
}
