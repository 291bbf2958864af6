package models

import "gorm.io/gorm"

// Category groups products for catalogue filtering. Categories are
// upserted by slug at seed time and whenever a listing names a new one.
type Category struct {
	gorm.Model
	Name string `gorm:"size:255;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:255;not null" json:"slug"`
}

// CategoryNames maps a category slug to its display name. Listings that
// name an unknown slug fall back to a title-cased version of the slug.
var CategoryNames = map[string]string{
	"pottery":  "Pottery & Ceramics",
	"jewelry":  "Jewelry & Accessories",
	"textiles": "Textiles & Fiber Art",
	"woodwork": "Woodwork & Furniture",
	"art":      "Art & Prints",
	"other":    "Other",
}
