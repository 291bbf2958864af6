package services

import (
	"errors"
	"math"

	"github.com/shashiranjanraj/crafthaven/app/events"
	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/repositories"
	"github.com/shashiranjanraj/crafthaven/pkg/collection"
	"github.com/shashiranjanraj/crafthaven/pkg/event"
	"github.com/shashiranjanraj/crafthaven/pkg/metrics"
	"gorm.io/gorm"
)

// ReviewInput is the payload for posting a review.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,between=1,5"`
	Comment string `json:"comment" validate:"nullable,max=2000"`
}

// Ratings is the aggregate shown next to a product or shop.
type Ratings struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"totalReviews"`
}

// ReviewService owns posting and aggregating reviews.
type ReviewService struct {
	reviews  *repositories.ReviewRepository
	products *repositories.ProductRepository
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		reviews:  repositories.NewReviewRepository(db),
		products: repositories.NewProductRepository(db),
	}
}

// round1 rounds to one decimal place, the precision shown everywhere.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// AggregateRatings computes the mean rating over a review set.
// An empty set yields {0, 0} rather than NaN.
func AggregateRatings(reviews []models.Review) Ratings {
	if len(reviews) == 0 {
		return Ratings{}
	}
	sum := collection.Sum(reviews, func(r models.Review) float64 {
		return float64(r.Rating)
	})
	return Ratings{
		Average: round1(sum / float64(len(reviews))),
		Count:   len(reviews),
	}
}

// SellerRatings computes a shop's rating as the mean of its per-product
// means, over products that have at least one review. A prolific product
// therefore cannot drown out the rest of the shop.
func SellerRatings(reviews []models.Review) Ratings {
	if len(reviews) == 0 {
		return Ratings{}
	}

	byProduct := collection.GroupBy(reviews, func(r models.Review) uint {
		return r.ProductID
	})

	var sumOfMeans float64
	for _, rs := range byProduct {
		sum := collection.Sum(rs, func(r models.Review) float64 {
			return float64(r.Rating)
		})
		sumOfMeans += sum / float64(len(rs))
	}

	return Ratings{
		Average: round1(sumOfMeans / float64(len(byProduct))),
		Count:   len(reviews),
	}
}

// ForProduct returns a product's reviews with their aggregate.
func (s *ReviewService) ForProduct(productID uint) ([]models.Review, Ratings, error) {
	reviews, err := s.reviews.ForProduct(productID)
	if err != nil {
		return nil, Ratings{}, err
	}
	return reviews, AggregateRatings(reviews), nil
}

// ForSeller returns the two-level shop aggregate.
func (s *ReviewService) ForSeller(sellerID uint) (Ratings, error) {
	reviews, err := s.reviews.ForSellerProducts(sellerID)
	if err != nil {
		return Ratings{}, err
	}
	return SellerRatings(reviews), nil
}

// Create posts a review on the product with the given slug.
//
// Rules enforced here:
//   - the product must exist and be visible (active)
//   - sellers cannot review their own products
//   - one review per (product, user): the insert itself is the check,
//     via the composite unique index, so two concurrent submissions
//     cannot both land
func (s *ReviewService) Create(slug string, userID uint, in ReviewInput) (models.Review, error) {
	product, err := s.products.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Review{}, ErrNotFound
		}
		return models.Review{}, err
	}
	if !product.IsActive {
		return models.Review{}, ErrNotFound
	}

	if product.Seller != nil && product.Seller.UserID == userID {
		return models.Review{}, ErrOwnReview
	}

	review := models.Review{
		ProductID: product.ID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}

	if err := s.reviews.Create(&review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Review{}, ErrDuplicateReview
		}
		return models.Review{}, err
	}

	metrics.ReviewsCreated.Inc()
	event.Fire(events.ReviewCreatedName, events.ReviewCreated{
		ReviewID:    review.ID,
		ProductID:   product.ID,
		ProductSlug: product.Slug,
		SellerID:    product.SellerID,
		Rating:      review.Rating,
	})
	return review, nil
}
