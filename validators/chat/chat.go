package chatValidator

import (
	"strings"

	"academy/middleware"
	"academy/validators"

	"github.com/gofiber/fiber/v2"
)

type ChatRequest struct {
	Message string `json:"message" validate:"max=4000"`
}

// Chat validator middleware
func Chat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChatRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Message = strings.TrimSpace(reqData.Message)
		if reqData.Message == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No message provided", nil)
		}
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChat", reqData)
		return c.Next()
	}
}
