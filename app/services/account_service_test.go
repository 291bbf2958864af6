package services_test

import (
	"testing"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "Ana", "ana@example.test", models.RoleBuyer)

	_, err := services.NewAccountService(db).SetRole(user.ID, "WIZARD")
	assert.ErrorIs(t, err, services.ErrInvalidRole)
}

func TestSetRoleUnknownUser(t *testing.T) {
	db := testDB(t)

	_, err := services.NewAccountService(db).SetRole(9999, models.RoleSeller)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSetRoleSameRoleIsNoOp(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "Ana", "ana@example.test", models.RoleBuyer)

	got, err := services.NewAccountService(db).SetRole(user.ID, models.RoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, got.Role)

	// No shop profile appears from a no-op transition.
	var count int64
	db.Model(&models.SellerProfile{}).Count(&count)
	assert.Zero(t, count)
}

func TestBecomingSellerCreatesShopLazily(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "Maya Torres", "maya@example.test", models.RoleBuyer)
	svc := services.NewAccountService(db)

	got, err := svc.SetRole(user.ID, models.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, got.Role)

	var profile models.SellerProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Maya Torres's Shop", profile.ShopName)
}

func TestBecomingSellerWithBlankNameFallsBack(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "   ", "blank@example.test", models.RoleBuyer)

	_, err := services.NewAccountService(db).SetRole(user.ID, models.RoleSeller)
	require.NoError(t, err)

	var profile models.SellerProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "My Shop", profile.ShopName)
}

func TestShopProfileSurvivesRoundTrip(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "Maya", "maya@example.test", models.RoleBuyer)
	svc := services.NewAccountService(db)

	_, err := svc.SetRole(user.ID, models.RoleSeller)
	require.NoError(t, err)

	var profile models.SellerProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	require.NoError(t, db.Model(&profile).Update("shop_name", "Maya's Clayworks").Error)

	// Step down and back up: the profile is reused, not recreated.
	_, err = svc.SetRole(user.ID, models.RoleBuyer)
	require.NoError(t, err)
	_, err = svc.SetRole(user.ID, models.RoleSeller)
	require.NoError(t, err)

	var count int64
	db.Model(&models.SellerProfile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Maya's Clayworks", profile.ShopName)
}

func TestLeavingSellerDeactivatesListings(t *testing.T) {
	db := testDB(t)
	user, profile := createSeller(t, db, "Maya", "maya@example.test")
	category := createCategory(t, db, "pottery", "Pottery & Ceramics")
	now := time.Now()
	createProduct(t, db, profile.ID, category.ID, "Mug", "mug-1", 2800, true, now)
	createProduct(t, db, profile.ID, category.ID, "Bowl", "bowl-1", 6400, true, now)

	_, err := services.NewAccountService(db).SetRole(user.ID, models.RoleBuyer)
	require.NoError(t, err)

	var active int64
	db.Model(&models.Product{}).Where("seller_id = ? AND is_active = ?", profile.ID, true).Count(&active)
	assert.Zero(t, active)

	// The profile itself survives the step-down.
	var kept models.SellerProfile
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&kept).Error)
}

func TestSellerToAdminKeepsListingsActive(t *testing.T) {
	db := testDB(t)
	user, profile := createSeller(t, db, "Maya", "maya@example.test")
	category := createCategory(t, db, "pottery", "Pottery & Ceramics")
	createProduct(t, db, profile.ID, category.ID, "Mug", "mug-1", 2800, true, time.Now())

	_, err := services.NewAccountService(db).SetRole(user.ID, models.RoleAdmin)
	require.NoError(t, err)

	var active int64
	db.Model(&models.Product{}).Where("seller_id = ? AND is_active = ?", profile.ID, true).Count(&active)
	assert.EqualValues(t, 1, active)

	// No second profile either: ADMIN keeps the existing shop.
	var count int64
	db.Model(&models.SellerProfile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpdateNameTrims(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "Ana", "ana@example.test", models.RoleBuyer)

	got, err := services.NewAccountService(db).UpdateName(user.ID, "  Ana Lucia  ")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lucia", got.Name)
}

func TestDeleteAccount(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "Ana", "ana@example.test", models.RoleBuyer)
	svc := services.NewAccountService(db)

	require.NoError(t, svc.Delete(user.ID))

	_, err := svc.Get(user.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteSellerCascades(t *testing.T) {
	db := testDB(t)
	seller, profile := createSeller(t, db, "Maya", "maya@example.test")
	buyer := createUser(t, db, "Sam", "sam@example.test", models.RoleBuyer)
	category := createCategory(t, db, "pottery", "Pottery & Ceramics")
	product := createProduct(t, db, profile.ID, category.ID, "Mug", "mug-1", 2800, true, time.Now())
	createReview(t, db, product.ID, buyer.ID, 5)

	require.NoError(t, services.NewAccountService(db).Delete(seller.ID))

	var count int64
	db.Model(&models.SellerProfile{}).Where("user_id = ?", seller.ID).Count(&count)
	assert.Zero(t, count, "shop profile should go with the account")
	db.Model(&models.Product{}).Where("seller_id = ?", profile.ID).Count(&count)
	assert.Zero(t, count, "products should go with the account")
	db.Model(&models.Review{}).Where("product_id = ?", product.ID).Count(&count)
	assert.Zero(t, count, "reviews on the products should go with the account")
}

func TestDeleteBuyerRemovesTheirReviews(t *testing.T) {
	db := testDB(t)
	_, profile := createSeller(t, db, "Maya", "maya@example.test")
	buyer := createUser(t, db, "Sam", "sam@example.test", models.RoleBuyer)
	category := createCategory(t, db, "pottery", "Pottery & Ceramics")
	product := createProduct(t, db, profile.ID, category.ID, "Mug", "mug-1", 2800, true, time.Now())
	createReview(t, db, product.ID, buyer.ID, 4)

	require.NoError(t, services.NewAccountService(db).Delete(buyer.ID))

	var count int64
	db.Model(&models.Review{}).Where("user_id = ?", buyer.ID).Count(&count)
	assert.Zero(t, count)

	// The reviewed product stays; only the reviewer's data goes.
	db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
