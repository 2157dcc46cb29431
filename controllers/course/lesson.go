package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kwa/database"
	"kwa/middleware"
	"kwa/models"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
)

// GetLesson returns one lesson for viewing. The access policy decides
// viewable vs locked fresh on every call; a locked lesson comes back with
// title-only metadata, never the video reference or lab instructions.
func GetLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)
	db := database.Database.Db

	// The course itself must be published for learners to reach anything
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_published = ?", courseID, true).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_published = ?", lessonID, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var chapter courseModels.Chapter
	err := db.Where("id = ? AND course_id = ? AND is_published = ?", lesson.ChapterID, courseID, true).First(&chapter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}

	viewable, err := courseService.CanViewLesson(db, userID, lesson, chapter)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}

	if !viewable {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson is locked. Enroll to view it.", fiber.Map{
			"lesson": LessonEntry{
				ID:       lesson.ID,
				Title:    lesson.Title,
				Position: lesson.Position,
			},
			"is_locked": true,
		})
	}

	var labs []courseModels.Lab
	if err := db.Where("lesson_id = ?", lesson.ID).Order("position asc").Find(&labs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}

	var progress courseModels.UserProgress
	isCompleted := false
	if err := db.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).First(&progress).Error; err == nil {
		isCompleted = progress.IsCompleted
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":       lesson,
		"chapter":      chapter,
		"labs":         labs,
		"is_locked":    false,
		"is_completed": isCompleted,
	})
}
