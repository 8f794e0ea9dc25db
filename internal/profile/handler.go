package profile

import (
	"strings"

	"tevo-service/internal/auth"
	"tevo-service/internal/database"
	"tevo-service/internal/models"
	"tevo-service/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ContactPayload struct {
	ContactInfoID uint   `json:"contactInfoId"`
	Type          string `json:"type"`
	Value         string `json:"value" validate:"required"`
}

type AddressPayload struct {
	AddressInfoID uint   `json:"addressInfoId"`
	Type          string `json:"type"`
	Value         string `json:"value"`
	Latitude      string `json:"latitude"`
	Longitude     string `json:"longitude"`
}

type UpdateRequest struct {
	UserID    uint             `json:"userId" validate:"required"`
	UserName  string           `json:"userName" validate:"required"`
	Password  string           `json:"password"` // boş bırakılırsa değişmez
	Contacts  []ContactPayload `json:"contactInfoList" validate:"dive"`
	Addresses []AddressPayload `json:"addressInfoList"`
}

// ensureOwnProfile profil uçlarının sahiplik kuralı: admin dışında herkes
// yalnızca kendi profiline erişebilir.
func ensureOwnProfile(c *fiber.Ctx, userID uint) error {
	tokenUserID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return err
	}
	role, err := auth.RoleFromCtx(c)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && tokenUserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Sadece kendi profilinize erişebilirsiniz")
	}
	return nil
}

// GET /Profile/GetProfile?userId=
func GetProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.QueryInt("userId")
		if userID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "userId zorunlu")
		}
		if err := ensureOwnProfile(c, uint(userID)); err != nil {
			return err
		}

		var user models.User
		if err := database.DB.
			Preload("ContactInfos").
			Preload("AddressInfos").
			First(&user, uint(userID)).Error; err != nil {
			return c.JSON(fiber.Map{"state": false, "message": "Profil bulunamadı"})
		}

		return c.JSON(fiber.Map{
			"state": true,
			"model": fiber.Map{
				"userId":          user.ID,
				"userName":        user.UserName,
				"role":            user.Role,
				"contactInfoList": user.ContactInfos,
				"addressInfoList": user.AddressInfos,
			},
		})
	}
}

// PUT /Profile/UpdateProfile: listeler upsert edilir: id'si olan kayıt
// güncellenir, id'siz kayıt eklenir, gövdede olmayan kayıt silinir. Talepler
// iletişim/adres kayıtlarına id ile referans verdiğinden mevcut id'ler
// korunur.
func UpdateProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.UserName = strings.TrimSpace(body.UserName)
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}
		for _, a := range body.Addresses {
			payload := auth.AddressInfoPayload{Value: a.Value, Latitude: a.Latitude, Longitude: a.Longitude}
			if msg, ok := auth.ValidateAddress(payload); !ok {
				return fiber.NewError(fiber.StatusBadRequest, msg)
			}
		}

		if err := ensureOwnProfile(c, body.UserID); err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, body.UserID).Error; err != nil {
			return c.JSON(fiber.Map{"state": false, "message": "Kullanıcı bulunamadı"})
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			user.UserName = body.UserName
			if body.Password != "" {
				hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
				if err != nil {
					return err
				}
				user.PasswordHash = string(hash)
			}
			if err := tx.Save(&user).Error; err != nil {
				return err
			}

			// İletişim listesi
			keepContacts := make([]uint, 0, len(body.Contacts))
			for _, cp := range body.Contacts {
				if cp.ContactInfoID != 0 {
					if err := tx.Model(&models.ContactInfo{}).
						Where("id = ? AND user_id = ?", cp.ContactInfoID, user.ID).
						Updates(map[string]any{"type": cp.Type, "value": cp.Value}).Error; err != nil {
						return err
					}
					keepContacts = append(keepContacts, cp.ContactInfoID)
					continue
				}
				ci := models.ContactInfo{UserID: user.ID, Type: cp.Type, Value: cp.Value}
				if err := tx.Create(&ci).Error; err != nil {
					return err
				}
				keepContacts = append(keepContacts, ci.ID)
			}
			if err := deleteMissing(tx, &models.ContactInfo{}, user.ID, keepContacts); err != nil {
				return err
			}

			// Adres listesi
			keepAddresses := make([]uint, 0, len(body.Addresses))
			for _, ap := range body.Addresses {
				if ap.AddressInfoID != 0 {
					if err := tx.Model(&models.AddressInfo{}).
						Where("id = ? AND user_id = ?", ap.AddressInfoID, user.ID).
						Updates(map[string]any{
							"type":      ap.Type,
							"value":     ap.Value,
							"latitude":  ap.Latitude,
							"longitude": ap.Longitude,
						}).Error; err != nil {
						return err
					}
					keepAddresses = append(keepAddresses, ap.AddressInfoID)
					continue
				}
				ai := models.AddressInfo{
					UserID:    user.ID,
					Type:      ap.Type,
					Value:     ap.Value,
					Latitude:  ap.Latitude,
					Longitude: ap.Longitude,
				}
				if err := tx.Create(&ai).Error; err != nil {
					return err
				}
				keepAddresses = append(keepAddresses, ai.ID)
			}
			return deleteMissing(tx, &models.AddressInfo{}, user.ID, keepAddresses)
		})
		if err != nil {
			return c.JSON(fiber.Map{"state": false, "message": "Güncelleme başarısız"})
		}

		if err := database.DB.
			Preload("ContactInfos").
			Preload("AddressInfos").
			First(&user, user.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Profil okunamadı")
		}

		return c.JSON(fiber.Map{
			"state": true,
			"model": fiber.Map{
				"userId":          user.ID,
				"userName":        user.UserName,
				"role":            user.Role,
				"contactInfoList": user.ContactInfos,
				"addressInfoList": user.AddressInfos,
			},
		})
	}
}

func deleteMissing(tx *gorm.DB, model any, userID uint, keep []uint) error {
	q := tx.Where("user_id = ?", userID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	return q.Delete(model).Error
}
