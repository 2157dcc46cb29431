package controllers

import (
	"github.com/gofiber/fiber/v2"

	"kwa/database"
	"kwa/middleware"
	"kwa/models"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
)

// CourseSummary is a catalog entry with the viewer's enrollment state
type CourseSummary struct {
	courseModels.Course
	IsEnrolled bool                   `json:"is_enrolled"`
	Progress   courseService.Progress `json:"progress"`
}

// GetAllCourses lists published courses for the catalog
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_published = ?", true).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]CourseSummary, len(courses))
	for i, crs := range courses {
		result[i] = CourseSummary{Course: crs}

		enrolled, err := courseService.IsEnrolled(db, userID, crs.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		result[i].IsEnrolled = enrolled

		if enrolled {
			progress, err := courseService.ComputeProgress(db, userID, crs.ID)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
			}
			result[i].Progress = progress
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"total":   len(result),
	})
}

// LessonEntry is a lesson as shown in the course outline. Locked lessons
// carry title-only metadata; the gated fields stay empty.
type LessonEntry struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Position    int    `json:"position"`
	IsFree      bool   `json:"is_free"`
	IsViewable  bool   `json:"is_viewable"`
	IsCompleted bool   `json:"is_completed"`
	Description string `json:"description,omitempty"`
	PlaybackID  string `json:"mux_playback_id,omitempty"`
}

// GetCourseDetails returns the published course tree with per-lesson
// access and completion state for the viewer
func GetCourseDetails(c *fiber.Ctx) error {
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

	tree, err := courseService.GetPublishedCourse(db, uint(courseID))
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	enrolled, err := courseService.IsEnrolled(db, userID, tree.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	type chapterEntry struct {
		courseModels.Chapter
		Lessons []LessonEntry `json:"lessons"`
	}

	chapters := make([]chapterEntry, len(tree.Chapters))
	for i, ch := range tree.Chapters {
		entries := make([]LessonEntry, len(ch.Lessons))
		for j, lesson := range ch.Lessons {
			viewable := courseService.IsLessonFree(lesson, ch.Chapter) || enrolled

			entries[j] = LessonEntry{
				ID:         lesson.ID,
				Title:      lesson.Title,
				Position:   lesson.Position,
				IsFree:     courseService.IsLessonFree(lesson, ch.Chapter),
				IsViewable: viewable,
			}
			if viewable {
				entries[j].Description = lesson.Description
				entries[j].PlaybackID = lesson.PlaybackID

				var progress courseModels.UserProgress
				if err := db.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).First(&progress).Error; err == nil {
					entries[j].IsCompleted = progress.IsCompleted
				}
			}
		}
		chapters[i] = chapterEntry{Chapter: ch.Chapter, Lessons: entries}
	}

	progress := courseService.Progress{}
	if enrolled {
		progress, err = courseService.ComputeProgress(db, userID, tree.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      tree.Course,
		"chapters":    chapters,
		"is_enrolled": enrolled,
		"progress":    progress,
	})
}
