package controllers

import (
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"github.com/shashiranjanraj/crafthaven/pkg/ws"
	"gorm.io/gorm"
)

// WSController upgrades seller dashboard connections onto the hub.
type WSController struct {
	hub      *ws.Hub
	profiles *services.ProfileService
}

func NewWSController(db *gorm.DB, hub *ws.Hub) *WSController {
	return &WSController{
		hub:      hub,
		profiles: services.NewProfileService(db),
	}
}

// Seller opens the live notification stream for the caller's shop.
// GET /api/ws/seller  (SELLER or ADMIN)
func (wc *WSController) Seller(c *ctx.Context) {
	profile, err := wc.profiles.Get(c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	ws.Upgrade(c.W, c.R, wc.hub, profile.ID)
}
