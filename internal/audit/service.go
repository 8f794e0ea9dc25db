package audit

import (
	"fmt"

	"tevo-service/internal/database"
	"tevo-service/internal/models"

	"github.com/rs/zerolog/log"
)

type LogOptions struct {
	UserID    uint
	UserName  string
	DemandID  uint
	Action    string
	FromState models.DemandState
	ToState   models.DemandState
}

// WriteLog talep geçişini iz kaydına yazar. Kayıt hatası geçişi geri almaz;
// sadece loglanır.
func WriteLog(opts LogOptions) {
	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		DemandID:    opts.DemandID,
		Action:      opts.Action,
		FromState:   opts.FromState,
		ToState:     opts.ToState,
		Description: fmt.Sprintf("%s: %s -> %s", opts.Action, opts.FromState, opts.ToState),
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Error().Err(err).Uint("demandId", opts.DemandID).Msg("Audit log kaydedilemedi")
	}
}
