package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "Admin"
	RoleSeller UserRole = "Seller"
	RoleBuyer  UserRole = "Buyer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return true
	}
	return false
}

type User struct {
	ID           uint          `gorm:"primaryKey" json:"userId"`
	UserName     string        `gorm:"size:100;uniqueIndex;not null" json:"userName"`
	PasswordHash string        `gorm:"size:255;not null" json:"-"`
	Role         UserRole      `gorm:"size:20;not null" json:"role"`
	IsBanned     bool          `gorm:"not null;default:false" json:"isBanned"`
	BanNote      string        `gorm:"size:255" json:"banNote"`
	ContactInfos []ContactInfo `gorm:"constraint:OnDelete:CASCADE" json:"contactInfoList"`
	AddressInfos []AddressInfo `gorm:"constraint:OnDelete:CASCADE" json:"addressInfoList"`
	CreatedAt    time.Time     `json:"-"`
	UpdatedAt    time.Time     `json:"-"`
}
