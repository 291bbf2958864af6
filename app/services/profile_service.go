package services

import (
	"errors"
	"strings"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/repositories"
	"gorm.io/gorm"
)

// ProfileInput is the payload for editing a shop profile.
type ProfileInput struct {
	ShopName string `json:"shopName" validate:"required,min=2,max=100"`
	Bio      string `json:"bio" validate:"nullable,max=500"`
	Location string `json:"location" validate:"nullable,max=100"`
	Website  string `json:"website" validate:"nullable,url"`
}

// ProfileService owns the seller's own shop profile.
type ProfileService struct {
	sellers *repositories.SellerRepository
	users   *repositories.UserRepository
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		sellers: repositories.NewSellerRepository(db),
		users:   repositories.NewUserRepository(db),
	}
}

// Get returns the caller's shop profile, creating it if the account
// became a seller through a path that skipped the lazy creation.
func (s *ProfileService) Get(userID uint) (models.SellerProfile, error) {
	profile, err := s.sellers.FindByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SellerProfile{}, err
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SellerProfile{}, ErrNotFound
		}
		return models.SellerProfile{}, err
	}

	profile = models.SellerProfile{
		UserID:   userID,
		ShopName: defaultShopName(user.Name),
	}
	if err := s.sellers.Create(&profile); err != nil {
		return models.SellerProfile{}, err
	}
	return profile, nil
}

// Update edits the caller's shop profile.
func (s *ProfileService) Update(userID uint, in ProfileInput) (models.SellerProfile, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return models.SellerProfile{}, err
	}

	profile.ShopName = strings.TrimSpace(in.ShopName)
	profile.Bio = in.Bio
	profile.Location = in.Location
	profile.Website = in.Website

	if err := s.sellers.Update(&profile); err != nil {
		return models.SellerProfile{}, err
	}
	return profile, nil
}
