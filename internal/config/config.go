package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	RedisAddr   string // boş bırakılırsa ban cache devre dışı kalır
	RedisDB     string
	JWTSecret   string
	CORSOrigins string
}

func Load() *Config {
	// .env varsa yükle, yoksa sessizce ortam değişkenleriyle devam et
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=tevo port=5432 sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		RedisDB:     getEnv("REDIS_DB", "0"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal().Msg("JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=tevo port=5432 sslmode=disable" {
		log.Warn().Msg("DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgini tanımla.")
	}
	if cfg.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR tanımlı değil, ban cache devre dışı; yasaklama kontrolü sadece giriş ve MenuPermission sırasında yapılır.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
