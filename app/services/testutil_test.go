package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// testDB opens a fresh in-memory database per test. Each database gets a
// unique name so parallel tests never share state.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SellerProfile{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "hashed", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// createSeller sets up a SELLER account with a shop profile.
func createSeller(t *testing.T, db *gorm.DB, name, email string) (models.User, models.SellerProfile) {
	t.Helper()
	user := createUser(t, db, name, email, models.RoleSeller)
	profile := models.SellerProfile{UserID: user.ID, ShopName: name + "'s Shop"}
	require.NoError(t, db.Create(&profile).Error)
	return user, profile
}

func createCategory(t *testing.T, db *gorm.DB, slug, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(&category).Error)
	return category
}

// createProduct inserts a listing with an explicit CreatedAt so sort
// tests are deterministic.
func createProduct(t *testing.T, db *gorm.DB, sellerID, categoryID uint, name, slug string, price int64, active bool, createdAt time.Time) models.Product {
	t.Helper()
	product := models.Product{
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Name:        name,
		Slug:        slug,
		Description: "A handcrafted piece made in a small studio.",
		Price:       price,
		Images:      models.ImageList{"https://cdn.example.test/" + slug + ".jpg"},
		Stock:       3,
		IsActive:    active,
	}
	product.CreatedAt = createdAt
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createReview(t *testing.T, db *gorm.DB, productID, userID uint, rating int) models.Review {
	t.Helper()
	review := models.Review{ProductID: productID, UserID: userID, Rating: rating, Comment: "nice"}
	require.NoError(t, db.Create(&review).Error)
	return review
}
