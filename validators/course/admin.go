package courseValidator

import (
	"strings"

	"academy/middleware"
	"academy/validators"

	"github.com/gofiber/fiber/v2"
)

type CourseForm struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"required,max=200,slug"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,max=100"`
	Difficulty  string `json:"difficulty" validate:"required,max=50"`
	Duration    string `json:"duration" validate:"required,max=50"`
	Image       string `json:"image" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	IsPublished *bool  `json:"is_published"`
}

// Published defaults to true when the flag is omitted
func (f *CourseForm) Published() bool {
	return f.IsPublished == nil || *f.IsPublished
}

type LessonForm struct {
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content" validate:"required"`
	VideoURL   string `json:"video_url" validate:"omitempty,url,max=500"`
	Duration   string `json:"duration" validate:"max=50"`
	OrderIndex *int   `json:"order_index" validate:"omitempty,min=0"`
}

// CourseFormValidator validates the admin create/update course body
func CourseFormValidator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseForm)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Slug = strings.TrimSpace(reqData.Slug)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// LessonFormValidator validates the admin create/update lesson body
func LessonFormValidator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonForm)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
