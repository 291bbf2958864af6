package repositories

import (
	"strings"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/pkg/metrics"
	"gorm.io/gorm"
)

// CatalogFilters narrows the public product listing. Zero values mean
// "no constraint"; price bounds are in cents.
type CatalogFilters struct {
	Query    string // case-insensitive match on name or description
	Category string // category slug
	MinPrice *int64
	MaxPrice *int64
	Sort     string // newest | oldest | price-asc | price-desc | name-asc | name-desc
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Catalog returns active products matching the filters, with seller and
// category preloaded for the listing payload.
func (r *ProductRepository) Catalog(f CatalogFilters) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	q := r.db.Model(&models.Product{}).
		Where("products.is_active = ?", true).
		Preload("Seller").
		Preload("Category")

	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", like, like)
	}

	if f.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", f.Category)
	}

	if f.MinPrice != nil {
		q = q.Where("products.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("products.price <= ?", *f.MaxPrice)
	}

	// Secondary order on id keeps pagination stable when the primary
	// sort key ties.
	q = q.Order(orderClause(f.Sort)).Order("products.id")

	var products []models.Product
	err := q.Find(&products).Error
	return products, err
}

func orderClause(sort string) string {
	switch sort {
	case "oldest":
		return "products.created_at ASC"
	case "price-asc":
		return "products.price ASC"
	case "price-desc":
		return "products.price DESC"
	case "name-asc":
		return "products.name ASC"
	case "name-desc":
		return "products.name DESC"
	default: // "newest" and anything unrecognised
		return "products.created_at DESC"
	}
}

// FindBySlug looks up one product by slug with its relations preloaded.
// Inactive products are visible here only to their owner; the service
// decides that, so no is_active filter is applied.
func (r *ProductRepository) FindBySlug(slug string) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product models.Product
	err := r.db.Preload("Seller").Preload("Category").
		Where("slug = ?", slug).First(&product).Error
	return product, err
}

// FindByID looks up one product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product models.Product
	err := r.db.Preload("Seller").Preload("Category").First(&product, id).Error
	return product, err
}

// BySeller returns every product (active or not) belonging to a seller.
func (r *ProductRepository) BySeller(sellerID uint) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var products []models.Product
	err := r.db.Preload("Category").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").Order("id").
		Find(&products).Error
	return products, err
}

// ActiveBySeller returns a seller's active products for the public shop page.
func (r *ProductRepository) ActiveBySeller(sellerID uint) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var products []models.Product
	err := r.db.Preload("Category").
		Where("seller_id = ? AND is_active = ?", sellerID, true).
		Order("created_at DESC").Order("id").
		Find(&products).Error
	return products, err
}

// CountActiveBySeller returns seller id → active listing count in one
// grouped query, for the artisan directory.
func (r *ProductRepository) CountActiveBySeller() (map[uint]int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	type row struct {
		SellerID uint
		N        int64
	}
	var rows []row
	err := r.db.Model(&models.Product{}).
		Select("seller_id, COUNT(*) AS n").
		Where("is_active = ?", true).
		Group("seller_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.SellerID] = r.N
	}
	return counts, nil
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(product).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Save(product).Error
}

// Delete removes a product and its reviews in one transaction. The
// review cleanup is explicit because SQLite does not enforce the FK
// cascade unless foreign_keys is enabled on the connection.
func (r *ProductRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("product_id = ?", id).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Product{}, id).Error
	})
}

// DeactivateBySeller hides every product of a seller in one statement.
// Used inside the role-transition transaction.
func (r *ProductRepository) DeactivateBySeller(tx *gorm.DB, sellerID uint) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return tx.Model(&models.Product{}).
		Where("seller_id = ?", sellerID).
		Update("is_active", false).Error
}
