package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"zeddream-backend/internal/cache"
	"zeddream-backend/internal/models"
)

const (
	productCacheKey  = "catalog:products:default"
	categoryCacheKey = "catalog:categories"
	catalogCacheTTL  = 5 * time.Minute
)

// ProductService serves the catalog. The unfiltered first page is cached in
// Redis because it backs the mobile home screen.
type ProductService struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewProductService creates a new ProductService
func NewProductService(db *gorm.DB, c *cache.Cache) *ProductService {
	return &ProductService{db: db, cache: c}
}

// ListParams are the supported catalog query options.
type ListParams struct {
	CategoryID  uint
	NewArrivals bool
	Search      string
	Sort        string // "price", "-price", "-created_at" (default)
	Page        int
	Limit       int
}

// Pagination mirrors the API's pagination envelope.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// PageRef points at an adjacent page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p *ListParams) normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 25
	}
}

func (p *ListParams) isDefault() bool {
	return p.CategoryID == 0 && !p.NewArrivals && p.Search == "" && p.Sort == "" && p.Page == 1 && p.Limit == 25
}

// List returns a page of products with pagination info.
func (s *ProductService) List(ctx context.Context, params ListParams) ([]models.Product, *Pagination, error) {
	params.normalize()

	if params.isDefault() {
		var cached []models.Product
		if s.cache.Get(ctx, productCacheKey, &cached) {
			return cached, &Pagination{}, nil
		}
	}

	query := s.db.Model(&models.Product{}).Preload("Category")

	if params.CategoryID != 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.NewArrivals {
		query = query.Where("is_new_arrival = ?", true)
	}
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	switch params.Sort {
	case "price":
		query = query.Order("price ASC")
	case "-price":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var products []models.Product
	offset := (params.Page - 1) * params.Limit
	if err := query.Offset(offset).Limit(params.Limit).Find(&products).Error; err != nil {
		return nil, nil, err
	}

	if params.isDefault() {
		s.cache.Set(ctx, productCacheKey, products, catalogCacheTTL)
	}

	return products, s.paginate(params, total), nil
}

func (s *ProductService) paginate(params ListParams, total int64) *Pagination {
	p := &Pagination{}
	if int64(params.Page*params.Limit) < total {
		p.Next = &PageRef{Page: params.Page + 1, Limit: params.Limit}
	}
	if params.Page > 1 {
		p.Prev = &PageRef{Page: params.Page - 1, Limit: params.Limit}
	}
	return p
}

// Get returns a single product with its category.
func (s *ProductService) Get(productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Categories returns all categories, cached.
func (s *ProductService) Categories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if s.cache.Get(ctx, categoryCacheKey, &cached) {
		return cached, nil
	}

	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	s.cache.Set(ctx, categoryCacheKey, categories, catalogCacheTTL)
	return categories, nil
}

// Create adds a product and invalidates the catalog cache.
func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if err := s.db.Create(product).Error; err != nil {
		return err
	}
	s.cache.Delete(ctx, productCacheKey)
	return nil
}

// Update modifies a product and invalidates the catalog cache.
func (s *ProductService) Update(ctx context.Context, productID uint, updates map[string]interface{}) (*models.Product, error) {
	product, err := s.Get(productID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, productCacheKey)
	return product, nil
}

// Delete removes a product and invalidates the catalog cache.
func (s *ProductService) Delete(ctx context.Context, productID uint) error {
	res := s.db.Delete(&models.Product{}, productID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}

	s.cache.Delete(ctx, productCacheKey)
	return nil
}
