package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/crafthaven/app/resources"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"gorm.io/gorm"
)

type updateProfileInput struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

// Accounts can switch themselves between BUYER and SELLER only; ADMIN is
// granted out of band.
type updateRoleInput struct {
	Role string `json:"role" validate:"required,in=BUYER,SELLER"`
}

// AccountController serves the authenticated user's own account.
type AccountController struct {
	accounts *services.AccountService
}

func NewAccountController(db *gorm.DB) *AccountController {
	return &AccountController{accounts: services.NewAccountService(db)}
}

// Show returns the caller's account.
// GET /api/user/profile
func (ac *AccountController) Show(c *ctx.Context) {
	user, err := ac.accounts.Get(c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx.M{"user": resources.NewUserView(user)})
}

// Update changes the caller's display name.
// PUT /api/user/profile
func (ac *AccountController) Update(c *ctx.Context) {
	var in updateProfileInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := ac.accounts.UpdateName(c.UserID(), in.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx.M{"user": resources.NewUserView(user)})
}

// UpdateRole transitions the caller to a new role. The fresh token in
// the response carries the new role claim; the old token stays valid
// for its lifetime but its role claim is stale.
// PUT /api/user/role
func (ac *AccountController) UpdateRole(c *ctx.Context) {
	var in updateRoleInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := ac.accounts.SetRole(c.UserID(), in.Role)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := freshToken(user.ID, user.Role)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ctx.M{
		"user":  resources.NewUserView(user),
		"token": token,
	})
}

// Delete removes the caller's account and everything it owns.
// DELETE /api/user/profile
func (ac *AccountController) Delete(c *ctx.Context) {
	if err := ac.accounts.Delete(c.UserID()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx.M{"message": "Account deleted"})
}
