package models

import "time"

type DemandState string

const (
	StateCreated   DemandState = "Talep Oluşturuldu"
	StateOffered   DemandState = "Teklif Verildi"
	StateApproved  DemandState = "Alıcı Onayladı"
	StateDelivered DemandState = "Teslim Edildi"
	StateCompleted DemandState = "Tamamlandı"
	StateCancelled DemandState = "İptal Edildi"
)

// IsTerminal tamamlanmış veya iptal edilmiş talepler için true döner;
// bu durumlardan geriye geçiş yoktur.
func (s DemandState) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// Demand alıcının satıcıya açtığı sipariş. Price ve Delivered, satıcı teklif
// verene kadar boş kalır; durum geçişleri tek yönlüdür.
type Demand struct {
	ID              uint        `gorm:"primaryKey" json:"demandId"`
	RecipientUserID uint        `gorm:"index;not null" json:"recipientUserId"`
	RecipientUser   *User       `json:"-"`
	DelivererUserID uint        `gorm:"index;not null" json:"delivererUserId"`
	DelivererUser   *User       `json:"-"`
	ProductID       uint        `gorm:"index;not null" json:"productId"`
	Demanded        float64     `gorm:"not null" json:"demanded"`
	Delivered       *float64    `json:"delivered"`
	Price           *float64    `json:"price"`
	Currency        string      `gorm:"size:8;not null" json:"currency"`
	ContactInfoID   uint        `json:"contactInfoId"`
	AddressInfoID   uint        `json:"addressInfoId"`
	State           DemandState `gorm:"size:30;not null;index" json:"state"`
	Date            time.Time   `gorm:"not null;index" json:"date"`
	CreatedAt       time.Time   `json:"-"`
	UpdatedAt       time.Time   `json:"-"`
}
