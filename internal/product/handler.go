package product

import (
	"strings"

	"tevo-service/internal/database"
	"tevo-service/internal/models"
	"tevo-service/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AddRequest struct {
	ProductName string `json:"productName" validate:"required"`
	Unit        string `json:"unit" validate:"required"`
}

type DeleteRequest struct {
	ProductID uint `json:"productId" validate:"required"`
}

// GET /Product/GetAll
func GetAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("name ASC").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}
		return c.JSON(fiber.Map{"state": true, "model": products})
	}
}

// POST /Product/Add
func AddHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.ProductName = strings.TrimSpace(body.ProductName)
		body.Unit = strings.TrimSpace(body.Unit)
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		p := models.Product{Name: body.ProductName, Unit: body.Unit}
		if err := database.DB.Create(&p).Error; err != nil {
			return c.JSON(fiber.Map{"state": false, "message": "Ürün eklenemedi, ad benzersiz olmalı"})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"state": true, "model": p})
	}
}

// POST /Product/Delete: referans veren talepler silinmez; ürün sadece
// katalogdan düşer.
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeleteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if msg, ok := validation.Struct(body); !ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		if err := database.DB.Delete(&models.Product{}, body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		return c.JSON(fiber.Map{"state": true})
	}
}
