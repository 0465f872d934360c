package routers

import (
	"academy/middleware"
	"academy/routers/adminRoutes"
	"academy/routers/authRoutes"
	"academy/routers/chatRoutes"
	"academy/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers every route group on app
func SetupRoutes(app *fiber.App) {
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	chatRoutes.SetupChatRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Route not found!", nil)
	})
}
