package middleware

import (
	"errors"

	"academy/logger"
	"academy/services"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// LoadActor resolves Locals("userId") into the authenticated context
// (*services.Actor) used by every core operation. Requests without a user id
// pass through anonymous; tokens for deleted accounts are rejected.
func LoadActor(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Next()
	}

	user, err := services.App.Identity.GetUser(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		logger.Log.Errorw("failed to load actor", "user_id", userID, "error", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while loading user!", nil)
	}

	c.Locals(actorKey, services.ActorFor(user))
	return c.Next()
}

// ActorFrom returns the authenticated caller, or nil for anonymous requests
func ActorFrom(c *fiber.Ctx) *services.Actor {
	actor, _ := c.Locals(actorKey).(*services.Actor)
	return actor
}

// AdminOnly is the single admin capability check for the admin route groups
func AdminOnly(c *fiber.Ctx) error {
	if err := ActorFrom(c).RequireAdmin(); err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}
	return c.Next()
}
