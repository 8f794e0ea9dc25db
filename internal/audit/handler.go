package audit

import (
	"tevo-service/internal/database"
	"tevo-service/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /Audit/GetAll?limit=&demandId=
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 200)
		if limit <= 0 || limit > 1000 {
			limit = 200
		}

		q := database.DB.Order("created_at DESC").Limit(limit)
		if demandID := c.QueryInt("demandId"); demandID > 0 {
			q = q.Where("demand_id = ?", demandID)
		}

		var logs []models.AuditLog
		if err := q.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		return c.JSON(logs)
	}
}
