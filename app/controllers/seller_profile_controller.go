package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/crafthaven/app/resources"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"gorm.io/gorm"
)

// SellerProfileController serves the seller's own shop profile.
type SellerProfileController struct {
	profiles *services.ProfileService
}

func NewSellerProfileController(db *gorm.DB) *SellerProfileController {
	return &SellerProfileController{profiles: services.NewProfileService(db)}
}

// Show returns the caller's shop profile.
// GET /api/seller/profile
func (pc *SellerProfileController) Show(c *ctx.Context) {
	profile, err := pc.profiles.Get(c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx.M{"profile": resources.NewProfileView(profile)})
}

// Update edits the caller's shop profile.
// PUT /api/seller/profile
func (pc *SellerProfileController) Update(c *ctx.Context) {
	var in services.ProfileInput
	if !c.BindJSON(&in) {
		return
	}

	profile, err := pc.profiles.Update(c.UserID(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx.M{"profile": resources.NewProfileView(profile)})
}
