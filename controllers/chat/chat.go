package chatController

import (
	"errors"

	"academy/logger"
	"academy/middleware"
	"academy/utils"
	chatValidator "academy/validators/chat"

	"github.com/gofiber/fiber/v2"
)

// Client is set at startup; nil disables the assistant
var Client *utils.ChatClient

// Ask forwards the learner's question to the assistant model
func Ask(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedChat").(*chatValidator.ChatRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No message provided", nil)
	}
	if Client == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Chat assistant is not configured!", nil)
	}

	reply, err := Client.Ask(c.UserContext(), reqData.Message)
	if err != nil {
		if errors.Is(err, utils.ErrUpstream) {
			logger.Log.Warnw("chat upstream failure", "error", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Chat assistant is unavailable, please try again later!", nil)
		}
		return middleware.ServiceErrorResponse(c, err, "Failed to get a reply!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply generated!", fiber.Map{"message": reply})
}
