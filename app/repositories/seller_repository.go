package repositories

import (
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/pkg/metrics"
	"gorm.io/gorm"
)

// SellerRepository handles database operations for SellerProfile.
type SellerRepository struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) *SellerRepository {
	return &SellerRepository{db: db}
}

// FindByID looks up a seller profile by primary key.
func (r *SellerRepository) FindByID(id uint) (models.SellerProfile, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var profile models.SellerProfile
	err := r.db.First(&profile, id).Error
	return profile, err
}

// All returns every shop profile, alphabetically by shop name.
func (r *SellerRepository) All() ([]models.SellerProfile, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var profiles []models.SellerProfile
	err := r.db.Order("shop_name").Order("id").Find(&profiles).Error
	return profiles, err
}

// FindByUserID looks up the profile owned by a user account.
func (r *SellerRepository) FindByUserID(userID uint) (models.SellerProfile, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var profile models.SellerProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	return profile, err
}

// Create persists a new seller profile.
func (r *SellerRepository) Create(profile *models.SellerProfile) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(profile).Error
}

// Update persists changes to an existing profile.
func (r *SellerRepository) Update(profile *models.SellerProfile) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Save(profile).Error
}
