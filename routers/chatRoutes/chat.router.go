package chatRoutes

import (
	chatControllers "academy/controllers/chat"
	chatValidators "academy/validators/chat"

	"github.com/gofiber/fiber/v2"
)

func SetupChatRoutes(app *fiber.App) {
	app.Post("/chat", chatValidators.Chat(), chatControllers.Ask)
}
