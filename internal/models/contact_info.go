package models

type ContactInfo struct {
	ID     uint   `gorm:"primaryKey" json:"contactInfoId"`
	UserID uint   `gorm:"index;not null" json:"-"`
	Type   string `gorm:"size:50" json:"type"` // Telefon, E-posta vs.
	Value  string `gorm:"size:100" json:"value"`
}
