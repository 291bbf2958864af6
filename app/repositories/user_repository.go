// Package repositories contains the data-access layer. Each repository
// wraps a *gorm.DB handle so services can share one transaction.
package repositories

import (
	"errors"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/pkg/metrics"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var user models.User
	err := r.db.First(&user, id).Error
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Save(user).Error
}

// Delete removes a user together with their seller profile, products and
// review history, in one transaction. The cascade is done explicitly
// rather than left to the FK constraints: SQLite ships with foreign_keys
// off per connection, so the constraints alone cannot be relied on.
func (r *UserRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var profile models.SellerProfile
		err := tx.Where("user_id = ?", id).First(&profile).Error
		switch {
		case err == nil:
			var productIDs []uint
			if err := tx.Model(&models.Product{}).
				Where("seller_id = ?", profile.ID).
				Pluck("id", &productIDs).Error; err != nil {
				return err
			}
			if len(productIDs) > 0 {
				if err := tx.Unscoped().
					Where("product_id IN ?", productIDs).
					Delete(&models.Review{}).Error; err != nil {
					return err
				}
				if err := tx.Unscoped().
					Where("seller_id = ?", profile.ID).
					Delete(&models.Product{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Unscoped().Delete(&profile).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		// Reviews the user wrote on other sellers' products.
		if err := tx.Unscoped().
			Where("user_id = ?", id).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, id).Error
	})
}
