package adminRoutes

import (
	adminControllers "academy/controllers/admin"
	"academy/middleware"
	"academy/routers/courseRoutes"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes mounts every admin route behind a single capability check
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.LoadActor, middleware.AdminOnly)

	adminGroup.Get("/dashboard", adminControllers.Dashboard)
	adminGroup.Get("/statistics", adminControllers.Statistics)

	adminGroup.Get("/users", adminControllers.ListUsers)
	adminGroup.Delete("/users/:id", validators.IDParam("id", "userID", "User"), adminControllers.DeleteUser)

	courseRoutes.SetupAdminCourseRoutes(adminGroup)
}
