// Package events defines the domain event names and payloads fired by
// the storefront services and consumed by queue jobs.
package events

// Event names, used with pkg/event and as queue job routing keys.
const (
	ReviewCreatedName  = "review.created"
	RoleChangedName    = "role.changed"
	ProductDeletedName = "product.deleted"
	AccountDeletedName = "account.deleted"
)

// ReviewCreated is fired after a review insert commits.
type ReviewCreated struct {
	ReviewID    uint   `json:"reviewId"`
	ProductID   uint   `json:"productId"`
	ProductSlug string `json:"productSlug"`
	SellerID    uint   `json:"sellerId"`
	Rating      int    `json:"rating"`
}

// RoleChanged is fired after a role-transition transaction commits.
type RoleChanged struct {
	UserID   uint   `json:"userId"`
	FromRole string `json:"fromRole"`
	ToRole   string `json:"toRole"`
}

// ProductDeleted is fired after a listing is removed.
type ProductDeleted struct {
	ProductID uint   `json:"productId"`
	SellerID  uint   `json:"sellerId"`
	Slug      string `json:"slug"`
}

// AccountDeleted is fired after an account and its data are removed.
type AccountDeleted struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
}
