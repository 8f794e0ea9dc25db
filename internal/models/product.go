package models

import "time"

type Product struct {
	ID        uint      `gorm:"primaryKey" json:"productId"`
	Name      string    `gorm:"size:100;not null;unique" json:"productName"`
	Unit      string    `gorm:"size:20;not null" json:"unit"` // Litre, Kg, Adet vs.
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
