package user

import (
	"tevo-service/internal/auth"
	"tevo-service/internal/database"
	"tevo-service/internal/models"
	"tevo-service/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type BanRequest struct {
	UserID  uint   `json:"userId" validate:"required"`
	BanNote string `json:"banNote"`
}

// GET /User/GetAll: zarf yok, düz dizi döner (istemci rolü kendisi süzer:
// alıcı ekranı satıcıları, yasaklama ekranı herkesi listeler).
func GetAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.
			Preload("ContactInfos").
			Preload("AddressInfos").
			Order("user_name ASC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}
		return c.JSON(users)
	}
}

// GET /User/GetAllBuyer
func GetAllBuyerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.
			Preload("ContactInfos").
			Preload("AddressInfos").
			Where("role = ?", models.RoleBuyer).
			Order("user_name ASC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}
		return c.JSON(users)
	}
}

// POST /User/Ban: kullanıcıyı yasaklar. Ban cache'i doluysa mevcut token'lar
// da bir sonraki istekte düşer; yoksa MenuPermission doğrulamasında yakalanır.
func BanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BanRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		tokenUserID, err := auth.UserIDFromCtx(c)
		if err != nil {
			return err
		}
		if tokenUserID == body.UserID {
			return fiber.NewError(fiber.StatusBadRequest, "Kendinizi yasaklayamazsınız")
		}

		var user models.User
		if err := database.DB.First(&user, body.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		if user.Role == models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Admin yasaklanamaz")
		}

		user.IsBanned = true
		user.BanNote = body.BanNote
		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı yasaklanamadı")
		}

		database.MarkBanned(c.Context(), user.ID)

		return c.JSON(fiber.Map{
			"userId":   user.ID,
			"userName": user.UserName,
			"isBanned": user.IsBanned,
			"banNote":  user.BanNote,
		})
	}
}

// DELETE /User/Delete/:id: yalnızca alıcı hesapları silinebilir; satıcı ve
// admin hesapları bu uçtan silinemez.
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var user models.User
		if err := database.DB.First(&user, uint(id)).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		if user.Role != models.RoleBuyer {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece alıcı hesapları silinebilir")
		}

		if err := database.DB.Select("ContactInfos", "AddressInfos").Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
