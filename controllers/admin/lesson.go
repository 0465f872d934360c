package adminController

import (
	"academy/middleware"
	"academy/services"
	courseValidator "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

func lessonInput(f *courseValidator.LessonForm) services.LessonInput {
	return services.LessonInput{
		Title:      f.Title,
		Content:    f.Content,
		VideoURL:   f.VideoURL,
		Duration:   f.Duration,
		OrderIndex: f.OrderIndex,
	}
}

// ListLessons returns the course, its lessons and the order a new lesson would get
func ListLessons(c *fiber.Ctx) error {
	ctx := c.UserContext()
	courseID := c.Locals("courseID").(uint)

	course, err := services.App.Catalog.GetCourse(ctx, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch course!")
	}
	lessons, err := services.App.Catalog.ListLessons(ctx, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch lessons!")
	}
	next, err := services.App.Catalog.NextLessonOrder(ctx, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch lessons!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"course":     course,
		"lessons":    lessons,
		"next_order": next,
	})
}

func CreateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := services.App.Catalog.CreateLesson(c.UserContext(), c.Locals("courseID").(uint), lessonInput(reqData))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to create lesson!")
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func UpdateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := services.App.Catalog.UpdateLesson(c.UserContext(), c.Locals("lessonID").(uint), lessonInput(reqData))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to update lesson!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	courseID, err := services.App.Catalog.DeleteLesson(c.UserContext(), c.Locals("lessonID").(uint))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to delete lesson!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", fiber.Map{
		"course_id": courseID,
	})
}
