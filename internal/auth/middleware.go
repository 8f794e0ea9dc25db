package auth

import (
	"fmt"
	"strings"

	"tevo-service/internal/config"
	"tevo-service/internal/database"
	"tevo-service/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserNameKey = "user_name"
	CtxUserRoleKey = "user_role"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		tokenStr := parts[1]

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		// Ban cache varsa yasaklı kullanıcıyı token süresi dolmadan düşür
		if database.IsBanned(c.Context(), claims.UserID) {
			return fiber.NewError(fiber.StatusUnauthorized, "Hesabınız yasaklandı")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserNameKey, claims.UserName)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

// RequireRole rota tablosundaki rol listesini uygular: oturumun rolü listede
// değilse korunan handler hiç çalışmaz.
func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := RoleFromCtx(c)
		if err != nil {
			return err
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
	}
}

func UserIDFromCtx(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bilgisi alınamadı")
	}
	return id, nil
}

func UserNameFromCtx(c *fiber.Ctx) string {
	name, _ := c.Locals(CtxUserNameKey).(string)
	return name
}

func RoleFromCtx(c *fiber.Ctx) (models.UserRole, error) {
	role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
	if !ok {
		return "", fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
	}
	return role, nil
}
