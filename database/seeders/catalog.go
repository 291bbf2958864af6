package seeders

import (
	"errors"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/shashiranjanraj/crafthaven/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("categories", SeedCategories)
	Register("demo", SeedDemo)
}

// SeedCategories upserts the standard category set by slug; re-running
// the seeder never duplicates rows or renames existing categories.
func SeedCategories(db *gorm.DB) error {
	for slug, name := range models.CategoryNames {
		var category models.Category
		err := db.Where("slug = ?", slug).First(&category).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Category{Name: name, Slug: slug}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedDemo creates one seller with a shop and a couple of listings plus
// a buyer who has left a review. Idempotent by seller email.
func SeedDemo(db *gorm.DB) error {
	var existing models.User
	if err := db.Where("email = ?", "maya@crafthaven.test").First(&existing).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	seller := models.User{
		Name:     "Maya Torres",
		Email:    "maya@crafthaven.test",
		Password: password,
		Role:     models.RoleSeller,
	}
	if err := db.Create(&seller).Error; err != nil {
		return err
	}

	profile := models.SellerProfile{
		UserID:   seller.ID,
		ShopName: "Maya's Clayworks",
		Bio:      "Hand-thrown pottery from a backyard studio.",
		Location: "Asheville, NC",
	}
	if err := db.Create(&profile).Error; err != nil {
		return err
	}

	var pottery models.Category
	if err := db.Where("slug = ?", "pottery").First(&pottery).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			SellerID:    profile.ID,
			CategoryID:  pottery.ID,
			Name:        "Speckled Stoneware Mug",
			Slug:        services.Slugify("Speckled Stoneware Mug"),
			Description: "A 12oz mug glazed in matte white with iron speckles.",
			Price:       2800,
			Images:      models.ImageList{"https://cdn.crafthaven.test/seed/mug.jpg"},
			Stock:       12,
			IsActive:    true,
		},
		{
			SellerID:    profile.ID,
			CategoryID:  pottery.ID,
			Name:        "Hand Carved Serving Bowl",
			Slug:        services.Slugify("Hand Carved Serving Bowl"),
			Description: "A wide serving bowl with carved geometric facets.",
			Price:       6400,
			Images:      models.ImageList{"https://cdn.crafthaven.test/seed/bowl.jpg"},
			Stock:       4,
			IsActive:    true,
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	buyer := models.User{
		Name:     "Sam Okafor",
		Email:    "sam@crafthaven.test",
		Password: password,
		Role:     models.RoleBuyer,
	}
	if err := db.Create(&buyer).Error; err != nil {
		return err
	}

	review := models.Review{
		ProductID: products[0].ID,
		UserID:    buyer.ID,
		Rating:    5,
		Comment:   "Beautiful glaze, exactly as pictured.",
	}
	return db.Create(&review).Error
}
