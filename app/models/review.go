package models

import "gorm.io/gorm"

// Review is a buyer's rating of a product. The composite unique index
// enforces one review per (product, user) pair at the database level;
// the service relies on gorm.ErrDuplicatedKey to detect races.
type Review struct {
	gorm.Model
	ProductID uint   `gorm:"not null;uniqueIndex:idx_reviews_product_user" json:"productId"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_reviews_product_user" json:"userId"`
	Rating    int    `gorm:"not null" json:"rating"` // 1..5
	Comment   string `gorm:"type:text" json:"comment"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
