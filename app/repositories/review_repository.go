package repositories

import (
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/pkg/metrics"
	"gorm.io/gorm"
)

// ReviewRepository handles database operations for Review.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ForProduct returns a product's reviews, newest first, with the
// reviewer preloaded for display names.
func (r *ReviewRepository) ForProduct(productID uint) ([]models.Review, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var reviews []models.Review
	err := r.db.Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	return reviews, err
}

// ForSellerProducts returns every review across a seller's active
// products. Feeds the two-level shop rating; reviews on deactivated
// listings stay out of it, matching what the public shop page shows.
func (r *ReviewRepository) ForSellerProducts(sellerID uint) ([]models.Review, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var reviews []models.Review
	err := r.db.
		Joins("JOIN products ON products.id = reviews.product_id").
		Where("products.seller_id = ? AND products.is_active = ?", sellerID, true).
		Find(&reviews).Error
	return reviews, err
}

// Create inserts a review. A second review for the same (product, user)
// pair fails with gorm.ErrDuplicatedKey via the composite unique index;
// there is deliberately no read-then-write window here.
func (r *ReviewRepository) Create(review *models.Review) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(review).Error
}
