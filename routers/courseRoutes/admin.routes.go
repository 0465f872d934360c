package courseRoutes

import (
	adminControllers "academy/controllers/admin"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course and lesson management on the admin group
func SetupAdminCourseRoutes(adminGroup fiber.Router) {
	courseGroup := adminGroup.Group("/course")

	// Course CRUD
	courseGroup.Get("/", adminControllers.ListCourses)
	courseGroup.Post("/", validators.CourseFormValidator(), adminControllers.CreateCourse)
	courseGroup.Get("/:id", validators.CourseID(), adminControllers.GetCourse)
	courseGroup.Put("/:id", validators.CourseID(), validators.CourseFormValidator(), adminControllers.UpdateCourse)
	courseGroup.Delete("/:id", validators.CourseID(), adminControllers.DeleteCourse)

	// Lesson management
	courseGroup.Get("/:id/lessons", validators.CourseID(), adminControllers.ListLessons)
	courseGroup.Post("/:id/lesson", validators.CourseID(), validators.LessonFormValidator(), adminControllers.CreateLesson)

	lessonGroup := adminGroup.Group("/lesson")
	lessonGroup.Put("/:id", validators.IDParam("id", "lessonID", "Lesson"), validators.LessonFormValidator(), adminControllers.UpdateLesson)
	lessonGroup.Delete("/:id", validators.IDParam("id", "lessonID", "Lesson"), adminControllers.DeleteLesson)
}
