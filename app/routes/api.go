// Package routes defines the HTTP route table.
package routes

import (
	"github.com/shashiranjanraj/crafthaven/app/controllers"
	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"github.com/shashiranjanraj/crafthaven/pkg/middleware"
	"github.com/shashiranjanraj/crafthaven/pkg/rbac"
	"github.com/shashiranjanraj/crafthaven/pkg/router"
	"github.com/shashiranjanraj/crafthaven/pkg/ws"
	"gorm.io/gorm"
)

// RegisterAPI mounts every storefront endpoint under /api.
func RegisterAPI(r *router.Router, db *gorm.DB, hub *ws.Hub) {
	authC := controllers.NewAuthController(db)
	catalogC := controllers.NewCatalogController(db)
	reviewC := controllers.NewReviewController(db)
	sellerProductC := controllers.NewSellerProductController(db)
	sellerProfileC := controllers.NewSellerProfileController(db)
	accountC := controllers.NewAccountController(db)
	uploadC := controllers.NewUploadController()
	wsC := controllers.NewWSController(db, hub)

	api := r.Group("/api")

	// Public storefront.
	api.Post("/auth/register", "auth.register", ctx.Wrap(authC.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(authC.Login))
	api.Get("/products", "catalog.index", ctx.Wrap(catalogC.Index))
	api.Get("/products/{slug}", "catalog.show", ctx.Wrap(catalogC.Show), middleware.OptionalAuth)
	api.Get("/products/{slug}/reviews", "reviews.index", ctx.Wrap(reviewC.Index), middleware.OptionalAuth)
	api.Get("/categories", "categories.index", ctx.Wrap(catalogC.Categories))
	api.Get("/sellers", "sellers.index", ctx.Wrap(catalogC.Sellers))
	api.Get("/sellers/{id}", "sellers.show", ctx.Wrap(catalogC.SellerPage))

	// Any authenticated account.
	authed := api.Group("", middleware.Auth)
	authed.Post("/products/{slug}/reviews", "reviews.create", ctx.Wrap(reviewC.Create))
	authed.Get("/user/profile", "account.show", ctx.Wrap(accountC.Show))
	authed.Put("/user/profile", "account.update", ctx.Wrap(accountC.Update))
	authed.Put("/user/role", "account.role", ctx.Wrap(accountC.UpdateRole))
	authed.Delete("/user/profile", "account.delete", ctx.Wrap(accountC.Delete))

	// Seller dashboard.
	seller := authed.Group("/seller", rbac.HasRole(models.RoleSeller, models.RoleAdmin))
	seller.Get("/products", "seller.products.index", ctx.Wrap(sellerProductC.Index))
	seller.Post("/products", "seller.products.create", ctx.Wrap(sellerProductC.Create))
	seller.Get("/products/{id}", "seller.products.show", ctx.Wrap(sellerProductC.Show))
	seller.Put("/products/{id}", "seller.products.update", ctx.Wrap(sellerProductC.Update))
	seller.Delete("/products/{id}", "seller.products.delete", ctx.Wrap(sellerProductC.Delete))
	seller.Get("/profile", "seller.profile.show", ctx.Wrap(sellerProfileC.Show))
	seller.Put("/profile", "seller.profile.update", ctx.Wrap(sellerProfileC.Update))
	seller.Post("/uploads", "seller.uploads", ctx.Wrap(uploadC.Image))

	// Live notifications for the seller dashboard.
	wsGroup := api.Group("/ws", middleware.Auth, rbac.HasRole(models.RoleSeller, models.RoleAdmin))
	wsGroup.Get("/seller", "ws.seller", ctx.Wrap(wsC.Seller))
}
