package models

import "time"

// AuditLog başarılı her talep durum geçişinde yazılır.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID   uint   `json:"userId"`
	UserName string `gorm:"size:100" json:"userName"` // denormalize

	DemandID uint `gorm:"index" json:"demandId"`

	// offer/approve/deliver/complete/cancel
	Action string `gorm:"size:20" json:"action"`

	FromState DemandState `gorm:"size:30" json:"fromState"`
	ToState   DemandState `gorm:"size:30" json:"toState"`

	Description string `gorm:"size:255" json:"description"`
}
