package models

import "time"

// Client eski müşteri kaydı. Demand akışından bağımsız, durum makinesi olmayan
// düz bir CRUD kaynağıdır; iki model bilinçli olarak birleştirilmemiştir.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"clientId"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Surname   string    `gorm:"size:100" json:"surname"`
	Tel       string    `gorm:"size:32" json:"tel"`
	Adres     string    `gorm:"size:255" json:"adres"`
	Demanded  float64   `json:"demanded"`
	Delivered float64   `json:"delivered"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
