package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/vpsdeals/vpsdeals/app/repository"
	apiv1 "github.com/vpsdeals/vpsdeals/internal/api/v1"
	"github.com/vpsdeals/vpsdeals/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	server := apiv1.NewAPIServer(repository.GetGlobalRepositories())

	v1.Get("/health", server.GetHealth)
	v1.Get("/vendors", server.GetVendors)
	v1.Get("/plans", server.GetPlans)

	admin := v1.Group("/admin", middleware.AdminTokenMiddleware())
	admin.Post("/stock/sync", server.PostStockSync)
	admin.Get("/stock/logs", server.GetStockLogs)
	admin.Get("/stock/settings", server.GetStockSettings)
	admin.Put("/stock/settings", server.PutStockSettings)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
