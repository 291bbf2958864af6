package services_test

import (
	"testing"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGetCreatesMissingShop(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "Maya Torres", "maya@example.test", models.RoleSeller)

	profile, err := services.NewProfileService(db).Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maya Torres's Shop", profile.ShopName)

	// The same profile comes back next time, not a fresh one.
	again, err := services.NewProfileService(db).Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}

func TestProfileGetUnknownUser(t *testing.T) {
	db := testDB(t)

	_, err := services.NewProfileService(db).Get(9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProfileUpdate(t *testing.T) {
	db := testDB(t)
	user, _ := createSeller(t, db, "Maya", "maya@example.test")

	profile, err := services.NewProfileService(db).Update(user.ID, services.ProfileInput{
		ShopName: "  Maya's Clayworks  ",
		Bio:      "Hand-thrown pottery.",
		Location: "Asheville, NC",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maya's Clayworks", profile.ShopName)
	assert.Equal(t, "Hand-thrown pottery.", profile.Bio)
	assert.Equal(t, "Asheville, NC", profile.Location)
}
