package models

import "gorm.io/gorm"

// SellerProfile is the shop identity attached to a seller account.
// Created lazily the first time an account becomes a SELLER and kept
// (inactive) if the account later steps back down to BUYER.
type SellerProfile struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex;not null" json:"userId"`
	ShopName string `gorm:"size:100;not null" json:"shopName"`
	Bio      string `gorm:"size:500" json:"bio"`
	Location string `gorm:"size:100" json:"location"`
	Website  string `gorm:"size:255" json:"website"`

	Products []Product `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}
