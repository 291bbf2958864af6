package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/events"
	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/repositories"
	"github.com/shashiranjanraj/crafthaven/pkg/event"
	"gorm.io/gorm"
)

// ProductInput is the payload for creating a listing.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Description string   `json:"description" validate:"required,min=10,max=2000"`
	Price       int64    `json:"price" validate:"required,gte=1"` // cents
	Category    string   `json:"category" validate:"required"`    // category slug
	Images      []string `json:"images" validate:"required,min=1,max=5"`
	Stock       int      `json:"stock" validate:"gte=0"`
	IsActive    *bool    `json:"isActive" validate:"nullable,boolean"`
}

// ProductUpdateInput is the payload for editing a listing. Every field
// is optional; absent fields keep their current value.
type ProductUpdateInput struct {
	Name        *string   `json:"name" validate:"nullable,min=2,max=255"`
	Description *string   `json:"description" validate:"nullable,min=10,max=2000"`
	Price       *int64    `json:"price" validate:"nullable,gte=1"`
	Category    *string   `json:"category" validate:"nullable,min=1"`
	Images      *[]string `json:"images" validate:"nullable,min=1,max=5"`
	Stock       *int      `json:"stock" validate:"nullable,gte=0"`
	IsActive    *bool     `json:"isActive" validate:"nullable,boolean"`
}

// ProductService owns seller-side listing management.
type ProductService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	sellers    *repositories.SellerRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		products:   repositories.NewProductRepository(db),
		categories: repositories.NewCategoryRepository(db),
		sellers:    repositories.NewSellerRepository(db),
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name, collapses every run of non-alphanumeric
// characters into one hyphen, and appends a millisecond timestamp so two
// listings with the same name never collide.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugStrip.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return fmt.Sprintf("%s-%d", s, time.Now().UnixMilli())
}

// profileFor resolves the caller's seller profile.
func (s *ProductService) profileFor(userID uint) (models.SellerProfile, error) {
	profile, err := s.sellers.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SellerProfile{}, ErrForbidden
		}
		return models.SellerProfile{}, err
	}
	return profile, nil
}

// ListMine returns every listing of the caller's shop, hidden ones included.
func (s *ProductService) ListMine(userID uint) ([]models.Product, error) {
	profile, err := s.profileFor(userID)
	if err != nil {
		return nil, err
	}
	return s.products.BySeller(profile.ID)
}

// Create adds a listing to the caller's shop. The category is upserted
// by slug so sellers can introduce new ones on the fly.
func (s *ProductService) Create(userID uint, in ProductInput) (models.Product, error) {
	profile, err := s.profileFor(userID)
	if err != nil {
		return models.Product{}, err
	}

	category, err := s.resolveCategory(in.Category)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		SellerID:    profile.ID,
		CategoryID:  category.ID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        Slugify(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Images:      models.ImageList(in.Images),
		Stock:       in.Stock,
		IsActive:    true,
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}

	InvalidateListings()
	return s.products.FindByID(product.ID)
}

// GetMine returns one of the caller's listings by ID.
func (s *ProductService) GetMine(userID, productID uint) (models.Product, error) {
	profile, err := s.profileFor(userID)
	if err != nil {
		return models.Product{}, err
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	if product.SellerID != profile.ID {
		return models.Product{}, ErrForbidden
	}
	return product, nil
}

// Update edits one of the caller's listings. Absent fields are left
// untouched; the slug is regenerated only when the name changes.
func (s *ProductService) Update(userID, productID uint, in ProductUpdateInput) (models.Product, error) {
	product, err := s.GetMine(userID, productID)
	if err != nil {
		return models.Product{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != product.Name {
			product.Slug = Slugify(name)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		category, err := s.resolveCategory(*in.Category)
		if err != nil {
			return models.Product{}, err
		}
		product.CategoryID = category.ID
	}
	if in.Images != nil {
		product.Images = models.ImageList(*in.Images)
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}

	InvalidateListings()
	return s.products.FindByID(product.ID)
}

// Delete removes one of the caller's listings and its reviews.
func (s *ProductService) Delete(userID, productID uint) error {
	product, err := s.GetMine(userID, productID)
	if err != nil {
		return err
	}

	if err := s.products.Delete(product.ID); err != nil {
		return err
	}

	InvalidateListings()
	event.Fire(events.ProductDeletedName, events.ProductDeleted{
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Slug:      product.Slug,
	})
	return nil
}

func (s *ProductService) resolveCategory(slug string) (models.Category, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	name, ok := models.CategoryNames[slug]
	if !ok {
		name = titleCase(slug)
	}
	return s.categories.UpsertBySlug(slug, name)
}

func titleCase(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
