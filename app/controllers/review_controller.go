package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/crafthaven/app/resources"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"gorm.io/gorm"
)

// ReviewController serves product reviews.
type ReviewController struct {
	catalog *services.CatalogService
	reviews *services.ReviewService
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{
		catalog: services.NewCatalogService(db),
		reviews: services.NewReviewService(db),
	}
}

// Index lists a product's reviews with the aggregate.
// GET /api/products/{slug}/reviews
func (rc *ReviewController) Index(c *ctx.Context) {
	product, err := rc.catalog.Get(c.Param("slug"), c.UserID())
	if err != nil {
		fail(c, err)
		return
	}

	reviews, ratings, err := rc.reviews.ForProduct(product.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ctx.M{
		"reviews":       resources.NewReviewViews(reviews),
		"averageRating": ratings.Average,
		"totalReviews":  ratings.Count,
	})
}

// Create posts a review on a product.
// POST /api/products/{slug}/reviews  (auth required)
func (rc *ReviewController) Create(c *ctx.Context) {
	var in services.ReviewInput
	if !c.BindJSON(&in) {
		return
	}

	review, err := rc.reviews.Create(c.Param("slug"), c.UserID(), in)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, ctx.M{"review": resources.NewReviewView(review)})
}
