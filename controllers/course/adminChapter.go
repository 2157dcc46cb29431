package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kwa/database"
	"kwa/middleware"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
)

// AdminCreateChapter appends a chapter at the end of the course
func AdminCreateChapter(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	crs, err := ownedCourse(db, courseID, userID)
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	reqData, ok := c.Locals("validatedChapter").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		IsFree      *bool  `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// New chapters go to the end: position = max(existing) + 1
	var maxPosition int
	db.Model(&courseModels.Chapter{}).Where("course_id = ?", crs.ID).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPosition)

	chapter := courseModels.Chapter{
		CourseID:    crs.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Position:    maxPosition + 1,
	}
	if reqData.IsFree != nil {
		chapter.IsFree = *reqData.IsFree
	}

	if err := db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

// ownedChapter fetches a chapter only when the caller owns its course
func ownedChapter(db *gorm.DB, courseID, chapterID int, userID uint) (*courseModels.Chapter, error) {
	if _, err := ownedCourse(db, courseID, userID); err != nil {
		return nil, err
	}
	var chapter courseModels.Chapter
	err := db.Where("id = ? AND course_id = ?", chapterID, courseID).First(&chapter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, courseService.ErrNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

// AdminUpdateChapter applies a partial field update to a chapter
func AdminUpdateChapter(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	db := database.Database.Db

	chapter, err := ownedChapter(db, courseID, chapterID, userID)
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	reqData, ok := c.Locals("validatedChapterUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		IsFree      *bool   `json:"is_free"`
		IsPublished *bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.IsFree != nil {
		updates["is_free"] = *reqData.IsFree
	}
	if reqData.IsPublished != nil {
		updates["is_published"] = *reqData.IsPublished
	}

	if len(updates) > 0 {
		if err := db.Model(chapter).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

// AdminDeleteChapter deletes a chapter and cascades to its lessons and labs
func AdminDeleteChapter(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	db := database.Database.Db

	chapter, err := ownedChapter(db, courseID, chapterID, userID)
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&courseModels.Lesson{}).Where("chapter_id = ?", chapter.ID).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&courseModels.Lab{}).Error; err != nil {
				return err
			}
			if err := tx.Where("chapter_id = ?", chapter.ID).Delete(&courseModels.Lesson{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(chapter).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}

// AdminReorderChapters rewrites chapter positions to a contiguous 1..N
// sequence following the client-supplied order. The whole rewrite runs in
// one transaction so concurrent readers never see duplicate or missing
// positions.
func AdminReorderChapters(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	crs, err := ownedCourse(db, courseID, userID)
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder chapters!", nil)
	}

	reqData, ok := c.Locals("validatedReorder").(*struct {
		List []uint `json:"list"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var count int64
	if err := db.Model(&courseModels.Chapter{}).Where("course_id = ?", crs.ID).Count(&count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder chapters!", nil)
	}
	if int(count) != len(reqData.List) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reorder list must contain every chapter of the course exactly once!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i, chapterID := range reqData.List {
			res := tx.Model(&courseModels.Chapter{}).
				Where("id = ? AND course_id = ?", chapterID, crs.ID).
				Update("position", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reorder list contains a chapter from another course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder chapters!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters reordered successfully!", nil)
}
