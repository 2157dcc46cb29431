package controllers

import (
	"github.com/gofiber/fiber/v2"

	"kwa/database"
	"kwa/middleware"
	"kwa/models"
	courseService "kwa/services/course"
)

// SetLessonProgress toggles the user's completion state for a lesson.
// The write is an idempotent upsert; no certificate or email side effects
// hang off it.
func SetLessonProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)
	reqData, ok := c.Locals("validatedProgress").(*struct {
		IsCompleted *bool `json:"is_completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	progress, err := courseService.SetLessonCompletion(database.Database.Db, userID, uint(lessonID), *reqData.IsCompleted)
	if err != nil {
		switch err {
		case courseService.ErrNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		case courseService.ErrNotEnrolled:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", progress)
}

// GetCourseProgress returns the user's completion summary for a course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	enrolled, err := courseService.IsEnrolled(db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	progress, err := courseService.ComputeProgress(db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	complete := progress.TotalLessons > 0 && progress.CompletedLessons == progress.TotalLessons

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":    progress,
		"is_complete": complete,
	})
}
