package courseRoutes

import (
	controllers "kwa/controllers/course"
	"kwa/middleware"
	validators "kwa/validators/course"
	labValidators "kwa/validators/lab"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up creator-side course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.AdminOnly)

	// Courses
	adminGroup.Post("/", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", controllers.AdminGetAllCourses)
	adminGroup.Get("/:course_id", validators.CourseParam(), controllers.AdminGetCourseDetails)
	adminGroup.Patch("/:course_id", validators.CourseParam(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:course_id", validators.CourseParam(), controllers.AdminDeleteCourse)
	adminGroup.Patch("/:course_id/publish", validators.CourseParam(), validators.PublishCourse(), controllers.AdminPublishCourse)

	// Chapters. The reorder route is registered before the :chapter_id
	// routes so the literal segment wins.
	adminGroup.Post("/:course_id/chapter", validators.CourseParam(), validators.CreateChapter(), controllers.AdminCreateChapter)
	adminGroup.Patch("/:course_id/chapter/reorder", validators.CourseParam(), validators.Reorder(), controllers.AdminReorderChapters)
	adminGroup.Patch("/:course_id/chapter/:chapter_id", validators.CourseParam(), validators.ChapterParam(), validators.UpdateChapter(), controllers.AdminUpdateChapter)
	adminGroup.Delete("/:course_id/chapter/:chapter_id", validators.CourseParam(), validators.ChapterParam(), controllers.AdminDeleteChapter)

	// Lessons
	adminGroup.Post("/:course_id/chapter/:chapter_id/lesson", validators.CourseParam(), validators.ChapterParam(), validators.CreateLesson(), controllers.AdminCreateLesson)
	adminGroup.Patch("/:course_id/chapter/:chapter_id/lesson/reorder", validators.CourseParam(), validators.ChapterParam(), validators.Reorder(), controllers.AdminReorderLessons)
	adminGroup.Patch("/:course_id/chapter/:chapter_id/lesson/:lesson_id", validators.CourseParam(), validators.ChapterParam(), validators.LessonParam(), validators.UpdateLesson(), controllers.AdminUpdateLesson)
	adminGroup.Patch("/:course_id/chapter/:chapter_id/lesson/:lesson_id/video", validators.CourseParam(), validators.ChapterParam(), validators.LessonParam(), validators.UpdateVideo(), controllers.AdminUpdateLessonVideo)
	adminGroup.Delete("/:course_id/chapter/:chapter_id/lesson/:lesson_id", validators.CourseParam(), validators.ChapterParam(), validators.LessonParam(), controllers.AdminDeleteLesson)

	// Labs
	adminGroup.Post("/:course_id/chapter/:chapter_id/lesson/:lesson_id/lab", validators.CourseParam(), validators.ChapterParam(), validators.LessonParam(), labValidators.CreateLab(), controllers.AdminCreateLab)
	adminGroup.Patch("/:course_id/chapter/:chapter_id/lesson/:lesson_id/lab/:lab_id", validators.CourseParam(), validators.ChapterParam(), validators.LessonParam(), labValidators.LabParam(), labValidators.UpdateLab(), controllers.AdminUpdateLab)
	adminGroup.Delete("/:course_id/chapter/:chapter_id/lesson/:lesson_id/lab/:lab_id", validators.CourseParam(), validators.ChapterParam(), validators.LessonParam(), labValidators.LabParam(), controllers.AdminDeleteLab)
}
