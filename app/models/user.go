package models

import "gorm.io/gorm"

// Roles a user account can hold. SELLER and ADMIN retain every BUYER
// capability; ADMIN additionally passes all ownership checks.
const (
	RoleBuyer  = "BUYER"
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

// User is the primary account model.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role     string `gorm:"size:50;not null;default:BUYER" json:"role"`

	SellerProfile *SellerProfile `gorm:"constraint:OnDelete:CASCADE" json:"sellerProfile,omitempty"`
}

// IsSeller reports whether the account currently holds seller capabilities.
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller || u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}
