package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// ImageList stores product image URLs as a JSON array in a text column,
// portable across all four supported drivers.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = ImageList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("models: cannot scan %T into ImageList", src)
	}
}

// Product is a handcrafted listing in the catalogue. Price is stored in
// cents to keep filtering and sorting exact.
type Product struct {
	gorm.Model
	SellerID    uint      `gorm:"not null;index" json:"sellerId"`
	CategoryID  uint      `gorm:"not null;index" json:"categoryId"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null;default:0" json:"price"`
	Images      ImageList `gorm:"type:text" json:"images"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"isActive"`

	Seller   *SellerProfile `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Reviews  []Review       `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}
