package adminController

import (
	"academy/middleware"
	"academy/services"
	courseValidator "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

func courseInput(f *courseValidator.CourseForm) services.CourseInput {
	return services.CourseInput{
		Title:       f.Title,
		Slug:        f.Slug,
		Description: f.Description,
		Category:    f.Category,
		Difficulty:  f.Difficulty,
		Duration:    f.Duration,
		Image:       f.Image,
		Content:     f.Content,
		IsPublished: f.Published(),
	}
}

// ListCourses lists every course, drafts included
func ListCourses(c *fiber.Ctx) error {
	courses, err := services.App.Catalog.ListCourses(c.UserContext())
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch courses!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

func GetCourse(c *fiber.Ctx) error {
	course, err := services.App.Catalog.GetCourse(c.UserContext(), c.Locals("courseID").(uint))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch course!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := services.App.Catalog.CreateCourse(c.UserContext(), courseInput(reqData))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to create course!")
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := services.App.Catalog.UpdateCourse(c.UserContext(), c.Locals("courseID").(uint), courseInput(reqData))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to update course!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes the course with its lessons, enrollments and quiz results
func DeleteCourse(c *fiber.Ctx) error {
	if err := services.App.Catalog.DeleteCourse(c.UserContext(), c.Locals("courseID").(uint)); err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to delete course!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
