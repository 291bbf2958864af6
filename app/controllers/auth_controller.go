package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/crafthaven/app/resources"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"gorm.io/gorm"
)

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"nullable,in=BUYER,SELLER"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthController serves /api/auth.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{auth: services.NewAuthService(db)}
}

// Register creates an account, BUYER by default.
// POST /api/auth/register
func (ac *AuthController) Register(c *ctx.Context) {
	var in registerInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := ac.auth.Register(in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, ctx.M{
		"user":  resources.NewUserView(user),
		"token": token,
	})
}

// Login exchanges credentials for a token.
// POST /api/auth/login
func (ac *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := ac.auth.Login(in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ctx.M{
		"user":  resources.NewUserView(user),
		"token": token,
	})
}
