package auth

import (
	"strings"

	"tevo-service/internal/config"
	"tevo-service/internal/database"
	"tevo-service/internal/models"
	"tevo-service/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ContactInfoPayload struct {
	Type  string `json:"type"`
	Value string `json:"value" validate:"required"`
}

type AddressInfoPayload struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type SignInRequest struct {
	UserName string              `json:"userName" validate:"required"`
	Password string              `json:"password" validate:"required"`
	Role     models.UserRole     `json:"role"`
	Contact  ContactInfoPayload  `json:"contactInfoModel"`
	Address  AddressInfoPayload  `json:"addressInfoModel"`
}

type LogInRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ValidateAddress adres invariantını denetler: enlem/boylam ya birlikte dolu ya
// birlikte boş olmalı; açıklama yalnızca koordinat varken boş bırakılabilir.
func ValidateAddress(a AddressInfoPayload) (string, bool) {
	hasLat := a.Latitude != ""
	hasLng := a.Longitude != ""
	if hasLat != hasLng {
		return "Enlem ve boylam birlikte verilmelidir", false
	}
	if a.Value == "" && !hasLat {
		return "Adres açıklaması veya haritadan seçilmiş konum zorunlu", false
	}
	return "", true
}

func SignInHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignInRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.UserName = strings.TrimSpace(body.UserName)

		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}
		if msg, ok := ValidateAddress(body.Address); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		if body.Role == "" {
			body.Role = models.RoleBuyer
		}
		if !body.Role.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol")
		}

		// Admin hesabı herkese açık kayıtla yalnızca hiç admin yokken açılabilir
		if body.Role == models.RoleAdmin {
			var count int64
			database.DB.Model(&models.User{}).
				Where("role = ?", models.RoleAdmin).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusForbidden, "Zaten bir admin var")
			}
		}

		var exist models.User
		if err := database.DB.Where("user_name = ?", body.UserName).First(&exist).Error; err == nil {
			return c.JSON(fiber.Map{"state": false, "message": "Bu kullanıcı adı zaten kayıtlı"})
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			UserName:     body.UserName,
			PasswordHash: string(hash),
			Role:         body.Role,
			ContactInfos: []models.ContactInfo{{Type: body.Contact.Type, Value: body.Contact.Value}},
			AddressInfos: []models.AddressInfo{{
				Type:      body.Address.Type,
				Value:     body.Address.Value,
				Latitude:  body.Address.Latitude,
				Longitude: body.Address.Longitude,
			}},
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&user).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"state": true,
			"model": fiber.Map{
				"userId":   user.ID,
				"userName": user.UserName,
				"role":     user.Role,
				"token":    token,
			},
		})
	}
}

func LogInHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LogInRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		var user models.User
		if err := database.DB.Where("user_name = ?", strings.TrimSpace(body.UserName)).First(&user).Error; err != nil {
			return c.JSON(fiber.Map{"state": false, "message": "Kullanıcı adı veya şifre hatalı"})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return c.JSON(fiber.Map{"state": false, "message": "Kullanıcı adı veya şifre hatalı"})
		}

		if user.IsBanned {
			return c.JSON(fiber.Map{"state": false, "message": "Hesabınız yasaklandı: " + user.BanNote})
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"state": true,
			"model": fiber.Map{
				"userId":   user.ID,
				"userName": user.UserName,
				"role":     user.Role,
				"token":    token,
			},
		})
	}
}

// MenuPermissionHandler istemcinin sakladığı kimliği her açılışta yeniden
// doğrular. Kullanıcı silinmiş veya yasaklanmışsa state:false döner ve istemci
// kimliği temizleyip giriş ekranına yönlenir.
func MenuPermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.QueryInt("userId")
		if userID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "userId zorunlu")
		}

		var user models.User
		if err := database.DB.First(&user, uint(userID)).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"state":   false,
				"message": "Kullanıcı bulunamadı",
			})
		}

		if user.IsBanned || database.IsBanned(c.Context(), user.ID) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"state":   false,
				"message": "Hesabınız yasaklandı: " + user.BanNote,
			})
		}

		return c.JSON(fiber.Map{
			"state": true,
			"model": fiber.Map{
				"userId":   user.ID,
				"userName": user.UserName,
				"role":     user.Role,
				"menu":     MenuForRole(user.Role),
			},
		})
	}
}
