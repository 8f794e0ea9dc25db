package client

import (
	"strings"

	"tevo-service/internal/database"
	"tevo-service/internal/models"
	"tevo-service/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ClientRequest struct {
	ClientID  uint    `json:"clientId"`
	Name      string  `json:"name" validate:"required"`
	Surname   string  `json:"surname"`
	Tel       string  `json:"tel"`
	Adres     string  `json:"adres"`
	Demanded  float64 `json:"demanded"`
	Delivered float64 `json:"delivered"`
	Price     float64 `json:"price"`
}

// GET /Client/GetAll: düz dizi döner.
func GetAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var clients []models.Client
		if err := database.DB.Order("name ASC").Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}
		return c.JSON(clients)
	}
}

// POST /Client/Add
func AddHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		client := models.Client{
			Name:      body.Name,
			Surname:   strings.TrimSpace(body.Surname),
			Tel:       strings.TrimSpace(body.Tel),
			Adres:     body.Adres,
			Demanded:  body.Demanded,
			Delivered: body.Delivered,
			Price:     body.Price,
		}

		if err := database.DB.Create(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(client)
	}
}

// PUT /Client/Update: kaydın tamamı gönderilir.
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ClientID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "clientId zorunlu")
		}

		body.Name = strings.TrimSpace(body.Name)
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		var client models.Client
		if err := database.DB.First(&client, body.ClientID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		client.Name = body.Name
		client.Surname = strings.TrimSpace(body.Surname)
		client.Tel = strings.TrimSpace(body.Tel)
		client.Adres = body.Adres
		client.Demanded = body.Demanded
		client.Delivered = body.Delivered
		client.Price = body.Price

		if err := database.DB.Save(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri güncellenemedi")
		}

		return c.JSON(client)
	}
}

// DELETE /Client/Delete/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		if err := database.DB.Delete(&models.Client{}, uint(id)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /Client/Filter?name=&surname=&tel=&adres= boş parametre hepsiyle
// eşleşir, dolu parametre kısmi (ILIKE) arar.
func FilterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Client{})

		if name := strings.TrimSpace(c.Query("name")); name != "" {
			q = q.Where("name ILIKE ?", "%"+name+"%")
		}
		if surname := strings.TrimSpace(c.Query("surname")); surname != "" {
			q = q.Where("surname ILIKE ?", "%"+surname+"%")
		}
		if tel := strings.TrimSpace(c.Query("tel")); tel != "" {
			q = q.Where("tel ILIKE ?", "%"+tel+"%")
		}
		if adres := strings.TrimSpace(c.Query("adres")); adres != "" {
			q = q.Where("adres ILIKE ?", "%"+adres+"%")
		}

		var clients []models.Client
		if err := q.Order("name ASC").Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Filtreleme başarısız")
		}

		return c.JSON(clients)
	}
}
