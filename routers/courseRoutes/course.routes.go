package courseRoutes

import (
	controllers "academy/controllers/course"
	"academy/middleware"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Published catalog, progress included when signed in
	courseGroup.Get("/list", controllers.ListCourses)
	courseGroup.Get("/:slug", middleware.OptionalJWT, middleware.LoadActor, validators.CourseSlug(), controllers.GetCourseDetails)

	// Enrollment and quizzes
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.LoadActor, validators.CourseID(), controllers.Enroll)
	courseGroup.Post("/:id/quiz/submit", middleware.JWTMiddleware, middleware.LoadActor, validators.CourseID(), validators.SubmitQuiz(), controllers.SubmitQuiz)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, middleware.LoadActor, validators.CourseID(), controllers.GetProgress)

	userGroup := app.Group("/user")
	userGroup.Get("/dashboard", middleware.JWTMiddleware, middleware.LoadActor, controllers.Dashboard)
}
