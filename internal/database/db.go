package database

import (
	"tevo-service/internal/config"
	"tevo-service/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Veritabanına bağlanılamadı")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.ContactInfo{},
		&models.AddressInfo{},
		&models.Client{},
		&models.Product{},
		&models.Demand{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate hatası")
	}

	log.Info().Msg("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
