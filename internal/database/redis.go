package database

import (
	"context"
	"strconv"

	"tevo-service/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis yasaklı kullanıcı id'lerini tutan cache. REDIS_ADDR tanımlı değilse nil
// kalır; o durumda ban kontrolü giriş ve MenuPermission'a düşer.
var Redis *redis.Client

const BannedUsersKey = "tevo:banned_users"

func InitRedis(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		return
	}

	db, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		db = 0
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   db,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatal().Err(err).Msg("Redis'e bağlanılamadı")
	}

	Redis = rdb
	log.Info().Str("addr", cfg.RedisAddr).Msg("Redis bağlantısı başarılı.")
}

// MarkBanned kullanıcıyı ban cache'ine ekler. Redis yoksa sessizce geçilir.
func MarkBanned(ctx context.Context, userID uint) {
	if Redis == nil {
		return
	}
	if err := Redis.SAdd(ctx, BannedUsersKey, strconv.FormatUint(uint64(userID), 10)).Err(); err != nil {
		log.Error().Err(err).Uint("userId", userID).Msg("Ban cache'ine yazılamadı")
	}
}

// IsBanned ban cache'ine bakar. Redis yoksa veya erişilemezse false döner;
// kalıcı kayıt veritabanındaki IsBanned alanıdır.
func IsBanned(ctx context.Context, userID uint) bool {
	if Redis == nil {
		return false
	}
	ok, err := Redis.SIsMember(ctx, BannedUsersKey, strconv.FormatUint(uint64(userID), 10)).Result()
	if err != nil {
		log.Error().Err(err).Uint("userId", userID).Msg("Ban cache'i okunamadı")
		return false
	}
	return ok
}
