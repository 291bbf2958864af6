package services

import (
	"errors"
	"strings"

	"github.com/shashiranjanraj/crafthaven/app/events"
	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/repositories"
	"github.com/shashiranjanraj/crafthaven/pkg/event"
	"github.com/shashiranjanraj/crafthaven/pkg/metrics"
	"gorm.io/gorm"
)

// AccountService owns role transitions and account lifecycle.
type AccountService struct {
	db    *gorm.DB
	users *repositories.UserRepository
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{
		db:    db,
		users: repositories.NewUserRepository(db),
	}
}

// Get returns the account by ID.
func (s *AccountService) Get(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

// UpdateName changes the display name.
func (s *AccountService) UpdateName(userID uint, name string) (models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return models.User{}, err
	}
	user.Name = strings.TrimSpace(name)
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SetRole transitions an account to the requested role inside a single
// transaction:
//
//   - same role: idempotent no-op, returns the account unchanged
//   - leaving SELLER: every product of the seller's shop is deactivated
//     before the role flips, so no window exists where a non-seller
//     account still has visible listings
//   - gaining SELLER (or ADMIN): a shop profile is created lazily on the
//     first transition and reused on later ones
//
// The seller profile itself is never deleted; stepping back down to
// BUYER keeps shop name, bio and review history intact.
func (s *AccountService) SetRole(userID uint, newRole string) (models.User, error) {
	if !models.ValidRole(newRole) {
		return models.User{}, ErrInvalidRole
	}

	var (
		user    models.User
		oldRole string
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		oldRole = user.Role
		if oldRole == newRole {
			return nil
		}

		wasSeller := oldRole == models.RoleSeller || oldRole == models.RoleAdmin
		isSeller := newRole == models.RoleSeller || newRole == models.RoleAdmin

		if wasSeller && !isSeller {
			var profile models.SellerProfile
			err := tx.Where("user_id = ?", userID).First(&profile).Error
			if err == nil {
				products := repositories.NewProductRepository(tx)
				if err := products.DeactivateBySeller(tx, profile.ID); err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if isSeller && !wasSeller {
			var profile models.SellerProfile
			err := tx.Where("user_id = ?", userID).First(&profile).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				profile = models.SellerProfile{
					UserID:   userID,
					ShopName: defaultShopName(user.Name),
				}
				if err := tx.Create(&profile).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}

		user.Role = newRole
		return tx.Save(&user).Error
	})
	if err != nil {
		return models.User{}, err
	}

	if oldRole != newRole {
		metrics.RoleTransitions.WithLabelValues(oldRole, newRole).Inc()
		event.Fire(events.RoleChangedName, events.RoleChanged{
			UserID:   userID,
			FromRole: oldRole,
			ToRole:   newRole,
		})
	}
	return user, nil
}

// defaultShopName derives the lazily-created shop's name from the
// account's display name.
func defaultShopName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "My Shop"
	}
	return name + "'s Shop"
}

// Delete removes the account and cascades to its profile, products and
// reviews.
func (s *AccountService) Delete(userID uint) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(userID); err != nil {
		return err
	}
	event.Fire(events.AccountDeletedName, events.AccountDeleted{
		UserID: userID,
		Email:  user.Email,
	})
	return nil
}
