package courseController

import (
	"errors"

	"academy/logger"
	"academy/middleware"
	"academy/models"
	"academy/services"
	"academy/utils"
	courseValidator "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

const recentQuizResults = 5

// ListCourses lists the published catalog
func ListCourses(c *fiber.Ctx) error {
	courses, err := services.App.Catalog.ListPublishedCourses(c.UserContext())
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch courses!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseDetails returns a published course with its ordered lessons and,
// for signed in learners, their progress
func GetCourseDetails(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Locals("courseSlug").(string)

	course, err := services.App.Catalog.GetPublishedCourseBySlug(ctx, slug)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch course!")
	}

	lessons, err := services.App.Catalog.ListLessons(ctx, course.ID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch lessons!")
	}

	var progress *models.Progress
	if actor := middleware.ActorFrom(c); actor != nil {
		progress, err = services.App.Tracker.GetProgress(ctx, actor.UserID, course.ID)
		if err != nil && !errors.Is(err, services.ErrNotFound) {
			return middleware.ServiceErrorResponse(c, err, "Failed to fetch progress!")
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"lessons":     lessons,
		"progress":    progress,
		"is_enrolled": progress != nil,
	})
}

// Enroll enrolls the caller; enrolling twice is reported, not an error
func Enroll(c *fiber.Ctx) error {
	ctx := c.UserContext()
	actor := middleware.ActorFrom(c)
	courseID := c.Locals("courseID").(uint)

	progress, already, err := services.App.Tracker.Enroll(ctx, actor, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to enroll in course!")
	}

	message := "Successfully enrolled in course!"
	if already {
		message = "Already enrolled in this course!"
	} else {
		notifyLearner(c, courseID, func(title string) {
			utils.SendEnrollmentEmail(actor.Email, actor.Username, title)
		})
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"already_enrolled": already,
		"progress":         progress,
	})
}

// SubmitQuiz records a quiz attempt, which completes the course
func SubmitQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedQuiz").(*courseValidator.QuizSubmitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	actor := middleware.ActorFrom(c)
	result, progress, err := services.App.Tracker.RecordQuizCompletion(c.UserContext(), actor, courseID, *reqData.Score, *reqData.Total)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to submit quiz!")
	}

	notifyLearner(c, courseID, func(title string) {
		utils.SendCompletionEmail(actor.Email, actor.Username, title, result.Score, result.TotalQuestions)
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted! Course completed.", fiber.Map{
		"result":   result,
		"progress": progress,
	})
}

// GetProgress returns the caller's progress in a course
func GetProgress(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	actor := middleware.ActorFrom(c)
	if err := services.RequireActor(actor); err != nil {
		return middleware.ServiceErrorResponse(c, err, "")
	}

	progress, err := services.App.Tracker.GetProgress(c.UserContext(), actor.UserID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
		}
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch progress!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

// Dashboard returns the learner's enrollments and latest quiz results
func Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	actor := middleware.ActorFrom(c)
	if err := services.RequireActor(actor); err != nil {
		return middleware.ServiceErrorResponse(c, err, "")
	}

	enrollments, err := services.App.Tracker.ListEnrollments(ctx, actor.UserID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch enrollments!")
	}
	results, err := services.App.Ledger.ListRecent(ctx, actor.UserID, recentQuizResults)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch quiz results!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"enrollments":  enrollments,
		"quiz_results": results,
	})
}

// notifyLearner resolves the course title for a learner e-mail. Lookup
// failures only skip the mail.
func notifyLearner(c *fiber.Ctx, courseID uint, send func(title string)) {
	if utils.Notifier == nil {
		return
	}
	course, err := services.App.Catalog.GetCourse(c.UserContext(), courseID)
	if err != nil {
		logger.Log.Warnw("skipping learner email", "course_id", courseID, "error", err)
		return
	}
	send(course.Title)
}
