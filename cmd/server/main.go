package main

import (
	"os"
	"strings"
	"time"

	"tevo-service/internal/audit"
	"tevo-service/internal/auth"
	"tevo-service/internal/client"
	"tevo-service/internal/config"
	"tevo-service/internal/database"
	"tevo-service/internal/demand"
	"tevo-service/internal/export"
	"tevo-service/internal/models"
	"tevo-service/internal/product"
	"tevo-service/internal/profile"
	"tevo-service/internal/stats"
	"tevo-service/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()
	database.Init(cfg)
	database.InitRedis(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("Beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api/v1/tevo-service")

	// Public auth
	api.Post("/Auth/SignIn", auth.SignInHandler(cfg))
	api.Post("/Auth/LogIn", auth.LogInHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/Auth/MenuPermission", auth.MenuPermissionHandler())

	// Kullanıcılar
	protected.Get("/User/GetAll", user.GetAllHandler())
	protected.Get("/User/GetAllBuyer", auth.RequireRole(models.RoleAdmin, models.RoleSeller), user.GetAllBuyerHandler())
	protected.Post("/User/Ban", auth.RequireRole(models.RoleAdmin, models.RoleSeller), user.BanHandler())
	protected.Delete("/User/Delete/:id", auth.RequireRole(models.RoleAdmin, models.RoleSeller), user.DeleteHandler())

	// Eski müşteri defteri
	clientRoutes := protected.Group("/Client", auth.RequireRole(models.RoleAdmin, models.RoleSeller))
	clientRoutes.Get("/GetAll", client.GetAllHandler())
	clientRoutes.Get("/Filter", client.FilterHandler())
	clientRoutes.Post("/Add", client.AddHandler())
	clientRoutes.Put("/Update", client.UpdateHandler())
	clientRoutes.Delete("/Delete/:id", client.DeleteHandler())

	// Talepler
	protected.Post("/Demand/Create", auth.RequireRole(models.RoleAdmin, models.RoleBuyer), demand.CreateHandler())
	protected.Get("/Demand/GetByUser", auth.RequireRole(models.RoleAdmin, models.RoleBuyer), demand.GetByUserHandler())
	protected.Post("/Demand/Approve", auth.RequireRole(models.RoleAdmin, models.RoleBuyer), demand.ApproveHandler())
	protected.Post("/Demand/Cancel", auth.RequireRole(models.RoleAdmin, models.RoleBuyer), demand.CancelHandler())

	sellerDemand := protected.Group("/Demand", auth.RequireRole(models.RoleAdmin, models.RoleSeller))
	sellerDemand.Get("/GetForSeller", demand.GetForSellerHandler())
	sellerDemand.Get("/GetAll", demand.GetAllHandler())
	sellerDemand.Post("/AddManually", demand.AddManuallyHandler())
	sellerDemand.Put("/UpdateBySeller", demand.UpdateBySellerHandler())
	sellerDemand.Get("/ExportExcel", export.ExcelHandler())
	sellerDemand.Get("/ExportPdf", export.PDFHandler())
	sellerDemand.Get("/Statistics", stats.StatisticsHandler())

	// Ürün kataloğu
	protected.Get("/Product/GetAll", product.GetAllHandler())
	protected.Post("/Product/Add", auth.RequireRole(models.RoleAdmin, models.RoleSeller), product.AddHandler())
	protected.Post("/Product/Delete", auth.RequireRole(models.RoleAdmin, models.RoleSeller), product.DeleteHandler())

	// Profil
	protected.Get("/Profile/GetProfile", profile.GetProfileHandler())
	protected.Put("/Profile/UpdateProfile", profile.UpdateProfileHandler())

	// Denetim kayıtları
	protected.Get("/Audit/GetAll", auth.RequireRole(models.RoleAdmin), audit.ListAuditLogsHandler())

	log.Info().Str("port", cfg.HTTPPort).Msg("Sunucu başlatılıyor")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("Sunucu kapandı")
	}
}
