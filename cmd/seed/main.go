package main

import (
	"log"

	"github.com/shopspring/decimal"

	"zeddream-backend/internal/config"
	"zeddream-backend/internal/database"
	"zeddream-backend/internal/models"
)

// Seeds the catalog with demo data. Safe to run repeatedly: rows are matched
// by their unique names and only created when missing.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	categories := []models.Category{
		{Name: "Dresses", Slug: "dresses"},
		{Name: "Jackets", Slug: "jackets"},
		{Name: "Hijabs", Slug: "hijabs"},
		{Name: "Sets", Slug: "sets"},
		{Name: "Accessories", Slug: "accessories"},
		{Name: "Shoes", Slug: "shoes"},
	}

	byName := make(map[string]uint, len(categories))
	for i := range categories {
		if err := db.Where("slug = ?", categories[i].Slug).
			FirstOrCreate(&categories[i]).Error; err != nil {
			log.Fatalf("Failed to seed category %s: %v", categories[i].Name, err)
		}
		byName[categories[i].Name] = categories[i].ID
	}
	log.Printf("Seeded %d categories", len(categories))

	originalPrice := func(v string) *decimal.Decimal {
		d := decimal.RequireFromString(v)
		return &d
	}

	products := []models.Product{
		{
			Name:          "Elegant Maxi Dress",
			CategoryID:    byName["Dresses"],
			Price:         decimal.RequireFromString("89.99"),
			OriginalPrice: originalPrice("119.99"),
			Image:         "https://images.zeddream.app/products/maxi-dress.jpg",
			Sizes:         "S,M,L,XL",
			Colors:        "Black,Navy,Beige",
			Rating:        4.8,
			IsNewArrival:  true,
			Discount:      "25% OFF",
		},
		{
			Name:         "Oversized Denim Jacket",
			CategoryID:   byName["Jackets"],
			Price:        decimal.RequireFromString("64.50"),
			Image:        "https://images.zeddream.app/products/denim-jacket.jpg",
			Sizes:        "S,M,L",
			Colors:       "Blue,Light Blue",
			Rating:       4.6,
			IsNewArrival: true,
		},
		{
			Name:       "Premium Silk Hijab",
			CategoryID: byName["Hijabs"],
			Price:      decimal.RequireFromString("24.99"),
			Image:      "https://images.zeddream.app/products/silk-hijab.jpg",
			Colors:     "Cream,Rose,Sage",
			Rating:     4.9,
		},
		{
			Name:          "Two-Piece Knit Set",
			CategoryID:    byName["Sets"],
			Price:         decimal.RequireFromString("74.00"),
			OriginalPrice: originalPrice("92.00"),
			Image:         "https://images.zeddream.app/products/knit-set.jpg",
			Sizes:         "S,M,L",
			Colors:        "Oatmeal,Charcoal",
			Rating:        4.7,
			Discount:      "20% OFF",
		},
	}

	for i := range products {
		if err := db.Where("name = ?", products[i].Name).
			FirstOrCreate(&products[i]).Error; err != nil {
			log.Fatalf("Failed to seed product %s: %v", products[i].Name, err)
		}
	}
	log.Printf("Seeded %d products", len(products))

	heroes := []models.Hero{
		{
			Title:    "New Season Arrivals",
			Subtitle: "Fresh styles for the modern wardrobe",
			Image:    "https://images.zeddream.app/heroes/new-season.jpg",
			CtaText:  "Shop Collection",
			LinkType: "category",
			Order:    1,
		},
		{
			Title:    "Virtual Try-On",
			Subtitle: "See it on you before you buy",
			Image:    "https://images.zeddream.app/heroes/try-on.jpg",
			CtaText:  "Try It Now",
			LinkType: "external",
			Order:    2,
		},
		{
			Title:    "Earn Points Every Order",
			Subtitle: "Scan the QR on delivery and get rewarded",
			Image:    "https://images.zeddream.app/heroes/loyalty.jpg",
			CtaText:  "Learn More",
			LinkType: "none",
			Order:    3,
		},
	}

	for i := range heroes {
		if err := db.Where("title = ?", heroes[i].Title).
			FirstOrCreate(&heroes[i]).Error; err != nil {
			log.Fatalf("Failed to seed hero %s: %v", heroes[i].Title, err)
		}
	}
	log.Printf("Seeded %d hero slides", len(heroes))

	rewards := []models.Reward{
		{Title: "10% Off Voucher", Subtitle: "On your next order", CostPoints: 200},
		{Title: "Free Shipping", Subtitle: "One order, any size", CostPoints: 350},
		{Title: "Exclusive Tote Bag", Subtitle: "Limited edition", CostPoints: 500},
	}

	for i := range rewards {
		if err := db.Where("title = ?", rewards[i].Title).
			FirstOrCreate(&rewards[i]).Error; err != nil {
			log.Fatalf("Failed to seed reward %s: %v", rewards[i].Title, err)
		}
	}
	log.Printf("Seeded %d rewards", len(rewards))

	log.Println("Seeding completed")
}
