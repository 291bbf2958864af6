package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/crafthaven/app/resources"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"gorm.io/gorm"
)

// CatalogController serves the public storefront.
type CatalogController struct {
	catalog *services.CatalogService
	reviews *services.ReviewService
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{
		catalog: services.NewCatalogService(db),
		reviews: services.NewReviewService(db),
	}
}

// Index lists active products with filtering and sorting.
// GET /api/products?q=&category=&minPrice=&maxPrice=&sort=
func (cc *CatalogController) Index(c *ctx.Context) {
	filters := services.ParseCatalogFilters(c.R.URL.Query())

	products, err := cc.catalog.List(filters)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ctx.M{"products": resources.NewProductViews(products)})
}

// Show returns one product with its rating aggregate.
// GET /api/products/{slug}
func (cc *CatalogController) Show(c *ctx.Context) {
	product, err := cc.catalog.Get(c.Param("slug"), c.UserID())
	if err != nil {
		fail(c, err)
		return
	}

	_, ratings, err := cc.reviews.ForProduct(product.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ctx.M{
		"product":       resources.NewProductView(product),
		"averageRating": ratings.Average,
		"totalReviews":  ratings.Count,
	})
}

// Categories lists every category for the filter sidebar.
// GET /api/categories
func (cc *CatalogController) Categories(c *ctx.Context) {
	categories, err := cc.catalog.Categories()
	if err != nil {
		fail(c, err)
		return
	}

	views := make([]resources.CategoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, resources.NewCategoryView(cat))
	}
	c.JSON(http.StatusOK, ctx.M{"categories": views})
}

// Sellers lists every shop with its active listing count.
// GET /api/sellers
func (cc *CatalogController) Sellers(c *ctx.Context) {
	profiles, counts, err := cc.catalog.Sellers()
	if err != nil {
		fail(c, err)
		return
	}

	views := make([]resources.SellerDirectoryView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, resources.NewSellerDirectoryView(p, counts[p.ID]))
	}
	c.JSON(http.StatusOK, ctx.M{"sellers": views})
}

// SellerPage returns a shop's public page: profile, active listings and
// the two-level shop rating.
// GET /api/sellers/{id}
func (cc *CatalogController) SellerPage(c *ctx.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.NotFound()
		return
	}

	profile, products, err := cc.catalog.SellerPage(uint(id))
	if err != nil {
		fail(c, err)
		return
	}

	ratings, err := cc.reviews.ForSeller(profile.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ctx.M{
		"seller":        resources.NewProfileView(profile),
		"products":      resources.NewProductViews(products),
		"averageRating": ratings.Average,
		"totalReviews":  ratings.Count,
	})
}
