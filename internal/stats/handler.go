package stats

import (
	"time"

	"tevo-service/internal/demand"

	"github.com/gofiber/fiber/v2"
)

// GET /Demand/Statistics?userId=&year= grafik ekranı verisi. year boşsa
// içinde bulunulan yıl kullanılır.
func StatisticsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := demand.UserIDParam(c)
		if err != nil {
			return err
		}

		year := c.QueryInt("year", time.Now().Year())

		ds, err := demand.ForSeller(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talepler okunamadı")
		}

		return c.JSON(fiber.Map{"state": true, "model": Build(ds, year)})
	}
}
