package courseValidator

import (
	"strconv"
	"strings"

	"academy/middleware"
	"academy/validators"

	"github.com/gofiber/fiber/v2"
)

type QuizSubmitRequest struct {
	Score *int `json:"score" validate:"required,min=0"`
	Total *int `json:"total" validate:"required,min=1"`
}

// IDParam validates a positive integer route parameter and stores it as uint under localKey
func IDParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" ID is required!", nil)
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
		}

		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return IDParam("id", "courseID", "Course")
}

// CourseSlug validates the :slug route parameter
func CourseSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
		}
		c.Locals("courseSlug", slug)
		return c.Next()
	}
}

// SubmitQuiz validates the quiz result body
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuizSubmitRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Struct(reqData)
		if len(errors) == 0 && *reqData.Score > *reqData.Total {
			errors["score"] = "Score cannot exceed total!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
