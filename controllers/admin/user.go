package adminController

import (
	"academy/middleware"
	"academy/services"

	"github.com/gofiber/fiber/v2"
)

func ListUsers(c *fiber.Ctx) error {
	users, err := services.App.Identity.ListUsers(c.UserContext())
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch users!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// DeleteUser removes an account with its progress and quiz history
func DeleteUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if actor := middleware.ActorFrom(c); actor != nil && actor.UserID == userID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	if err := services.App.Identity.DeleteUser(c.UserContext(), userID); err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to delete user!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}
