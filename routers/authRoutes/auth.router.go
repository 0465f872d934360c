package authRoutes

import (
	authControllers "academy/controllers/auth"
	"academy/middleware"
	authValidators "academy/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, middleware.LoadActor, authControllers.Me)
}
