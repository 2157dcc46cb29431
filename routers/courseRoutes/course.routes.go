package courseRoutes

import (
	controllers "kwa/controllers/course"
	"kwa/middleware"
	validators "kwa/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/:course_id", middleware.JWTMiddleware, validators.CourseParam(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:course_id/enroll", middleware.JWTMiddleware, validators.CourseParam(), controllers.EnrollInCourse)

	// Lesson viewing
	courseGroup.Get("/:course_id/lesson/:lesson_id", middleware.JWTMiddleware, validators.CourseParam(), validators.LessonParam(), controllers.GetLesson)

	// Progress
	courseGroup.Put("/:course_id/lesson/:lesson_id/progress", middleware.JWTMiddleware, validators.CourseParam(), validators.LessonParam(), validators.SetProgress(), controllers.SetLessonProgress)
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.CourseParam(), controllers.GetCourseProgress)

	// Certificate
	courseGroup.Get("/:course_id/certificate", middleware.JWTMiddleware, validators.CourseParam(), controllers.DownloadCertificate)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
