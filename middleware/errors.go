package middleware

import (
	"errors"

	"academy/logger"
	"academy/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceErrorResponse maps core errors onto HTTP statuses. Unexpected errors
// are logged and reported with the generic failure message.
func ServiceErrorResponse(c *fiber.Ctx, err error, failureMessage string) error {
	switch {
	case errors.Is(err, services.ErrDuplicateUsername):
		return JsonResponse(c, fiber.StatusConflict, false, "Username already exists!", nil)
	case errors.Is(err, services.ErrDuplicateEmail):
		return JsonResponse(c, fiber.StatusConflict, false, "Email already registered!", nil)
	case errors.Is(err, services.ErrDuplicateSlug):
		return JsonResponse(c, fiber.StatusConflict, false, "Course slug already exists!", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
	case errors.Is(err, services.ErrUnauthenticated):
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	case errors.Is(err, services.ErrForbidden):
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	case errors.Is(err, services.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	}

	logger.Log.Errorw(failureMessage, "path", c.Path(), "error", err)
	return JsonResponse(c, fiber.StatusInternalServerError, false, failureMessage, nil)
}
