package services

import (
	"errors"
	"strings"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/repositories"
	"github.com/shashiranjanraj/crafthaven/pkg/auth"
	"gorm.io/gorm"
)

// AuthService handles registration and login.
type AuthService struct {
	db    *gorm.DB
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:    db,
		users: repositories.NewUserRepository(db),
	}
}

// Register creates an account and returns it with a token. Accounts
// default to BUYER; registering as SELLER provisions the shop profile
// upfront, in the same transaction as the user row.
func (s *AuthService) Register(name, email, password, role string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = models.RoleBuyer
	}
	if role != models.RoleBuyer && role != models.RoleSeller {
		return models.User{}, "", ErrInvalidRole
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hashed,
		Role:     role,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if role != models.RoleSeller {
			return nil
		}
		profile := models.SellerProfile{
			UserID:   user.ID,
			ShopName: defaultShopName(user.Name),
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, "", ErrEmailTaken
		}
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}
