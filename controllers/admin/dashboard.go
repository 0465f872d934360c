package adminController

import (
	"academy/middleware"
	"academy/services"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns totals, the newest users and enrollments and per-course figures
func Dashboard(c *fiber.Ctx) error {
	dashboard, err := services.App.Statistics.Dashboard(c.UserContext())
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to load dashboard!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", dashboard)
}

func Statistics(c *fiber.Ctx) error {
	ctx := c.UserContext()

	global, err := services.App.Statistics.GlobalStatistics(ctx)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to load statistics!")
	}
	courses, err := services.App.Statistics.AllCourseStatistics(ctx)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to load statistics!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched successfully!", fiber.Map{
		"totals":  global,
		"courses": courses,
	})
}
