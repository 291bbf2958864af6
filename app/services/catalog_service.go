package services

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/repositories"
	"github.com/shashiranjanraj/crafthaven/pkg/cache"
	"gorm.io/gorm"
)

const (
	catalogCacheTTL  = 30 * time.Second
	categoryCacheTTL = 5 * time.Minute
)

// CatalogService serves the public storefront views.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	sellers    *repositories.SellerRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		products:   repositories.NewProductRepository(db),
		categories: repositories.NewCategoryRepository(db),
		sellers:    repositories.NewSellerRepository(db),
	}
}

// ParseCatalogFilters turns the raw query string into typed filters.
// Prices arrive as decimal amounts ("24.99") and are converted to cents;
// values that fail to parse are ignored rather than rejected, so a bad
// filter degrades to a broader listing instead of an error page.
func ParseCatalogFilters(query url.Values) repositories.CatalogFilters {
	f := repositories.CatalogFilters{
		Query:    strings.TrimSpace(query.Get("q")),
		Category: strings.TrimSpace(query.Get("category")),
		Sort:     strings.TrimSpace(query.Get("sort")),
	}

	if raw := query.Get("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			cents := int64(math.Round(v * 100))
			f.MinPrice = &cents
		}
	}
	if raw := query.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			cents := int64(math.Round(v * 100))
			f.MaxPrice = &cents
		}
	}

	return f
}

// List returns active products matching the filters. Unfiltered listings
// are served from cache when Redis is up.
func (s *CatalogService) List(f repositories.CatalogFilters) ([]models.Product, error) {
	cacheable := f.Query == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil

	key := "catalog:list:" + sortKey(f.Sort)
	if cacheable {
		var cached []models.Product
		if cache.Get(key, &cached) {
			return cached, nil
		}
	}

	products, err := s.products.Catalog(f)
	if err != nil {
		return nil, err
	}

	if cacheable {
		_ = cache.Set(key, products, catalogCacheTTL)
	}
	return products, nil
}

func sortKey(sort string) string {
	switch sort {
	case "oldest", "price-asc", "price-desc", "name-asc", "name-desc":
		return sort
	default:
		return "newest"
	}
}

// Get returns one product by slug. Inactive products are hidden unless
// viewerID owns them (viewerID 0 = anonymous).
func (s *CatalogService) Get(slug string, viewerID uint) (models.Product, error) {
	product, err := s.products.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	if !product.IsActive {
		if viewerID == 0 || product.Seller == nil || product.Seller.UserID != viewerID {
			return models.Product{}, ErrNotFound
		}
	}
	return product, nil
}

// Categories returns every category for the filter sidebar, served from
// cache when Redis is up. New categories only appear through listing
// writes, which invalidate this key along with the listing pages.
func (s *CatalogService) Categories() ([]models.Category, error) {
	var cached []models.Category
	if cache.Get("catalog:categories", &cached) {
		return cached, nil
	}

	categories, err := s.categories.All()
	if err != nil {
		return nil, err
	}

	_ = cache.Set("catalog:categories", categories, categoryCacheTTL)
	return categories, nil
}

// Sellers returns the artisan directory: every shop, alphabetically,
// with its number of active listings.
func (s *CatalogService) Sellers() ([]models.SellerProfile, map[uint]int64, error) {
	profiles, err := s.sellers.All()
	if err != nil {
		return nil, nil, err
	}

	counts, err := s.products.CountActiveBySeller()
	if err != nil {
		return nil, nil, err
	}
	return profiles, counts, nil
}

// SellerPage returns a shop profile and its active listings for the
// public seller page.
func (s *CatalogService) SellerPage(sellerID uint) (models.SellerProfile, []models.Product, error) {
	profile, err := s.sellers.FindByID(sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SellerProfile{}, nil, ErrNotFound
		}
		return models.SellerProfile{}, nil, err
	}

	products, err := s.products.ActiveBySeller(sellerID)
	if err != nil {
		return models.SellerProfile{}, nil, err
	}
	return profile, products, nil
}

// InvalidateListings drops the cached catalogue pages and the category
// list after a write.
func InvalidateListings() {
	keys := make([]string, 0, 7)
	for _, sort := range []string{"newest", "oldest", "price-asc", "price-desc", "name-asc", "name-desc"} {
		keys = append(keys, "catalog:list:"+sort)
	}
	keys = append(keys, "catalog:categories")
	_ = cache.Del(keys...)
}
