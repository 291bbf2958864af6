// Package resources shapes models into the JSON views the API returns.
// Views are explicit structs so internal columns (password hashes, FK
// ids that the client never needs) cannot leak by accident.
package resources

import (
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/pkg/collection"
)

// UserView is the account payload.
type UserView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserView(u models.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ProfileView is the shop profile payload.
type ProfileView struct {
	ID       uint   `json:"id"`
	ShopName string `json:"shopName"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
}

func NewProfileView(p models.SellerProfile) ProfileView {
	return ProfileView{
		ID:       p.ID,
		ShopName: p.ShopName,
		Bio:      p.Bio,
		Location: p.Location,
		Website:  p.Website,
	}
}

// SellerDirectoryView is one entry of the public artisan directory: the
// shop profile plus how many listings it currently has up.
type SellerDirectoryView struct {
	ProfileView
	ProductCount int64 `json:"productCount"`
}

func NewSellerDirectoryView(p models.SellerProfile, count int64) SellerDirectoryView {
	return SellerDirectoryView{ProfileView: NewProfileView(p), ProductCount: count}
}

// CategoryView is the category payload.
type CategoryView struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func NewCategoryView(c models.Category) CategoryView {
	return CategoryView{Name: c.Name, Slug: c.Slug}
}

// ProductView is the listing payload. Price stays in cents; the client
// formats it.
type ProductView struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Price       int64         `json:"price"`
	Images      []string      `json:"images"`
	Stock       int           `json:"stock"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
	Seller      *ProfileView  `json:"seller,omitempty"`
	Category    *CategoryView `json:"category,omitempty"`
}

func NewProductView(p models.Product) ProductView {
	view := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Images,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
	if view.Images == nil {
		view.Images = []string{}
	}
	if p.Seller != nil {
		sv := NewProfileView(*p.Seller)
		view.Seller = &sv
	}
	if p.Category != nil {
		cv := NewCategoryView(*p.Category)
		view.Category = &cv
	}
	return view
}

// NewProductViews maps a slice of products.
func NewProductViews(ps []models.Product) []ProductView {
	views := collection.Map(ps, NewProductView)
	if views == nil {
		views = []ProductView{}
	}
	return views
}

// ReviewView is the review payload; only the reviewer's display name is
// exposed, never their email.
type ReviewView struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewReviewView(r models.Review) ReviewView {
	view := ReviewView{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		view.UserName = r.User.Name
	}
	return view
}

// NewReviewViews maps a slice of reviews.
func NewReviewViews(rs []models.Review) []ReviewView {
	views := collection.Map(rs, NewReviewView)
	if views == nil {
		views = []ReviewView{}
	}
	return views
}
