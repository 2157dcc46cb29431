package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kwa/database"
	"kwa/middleware"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
	"kwa/utils"
)

// ownedLesson fetches a lesson only when the caller owns the course above it
func ownedLesson(db *gorm.DB, courseID, chapterID, lessonID int, userID uint) (*courseModels.Lesson, error) {
	if _, err := ownedChapter(db, courseID, chapterID, userID); err != nil {
		return nil, err
	}
	var lesson courseModels.Lesson
	err := db.Where("id = ? AND chapter_id = ?", lessonID, chapterID).First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, courseService.ErrNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

// AdminCreateLesson appends a lesson at the end of the chapter
func AdminCreateLesson(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		IsFree      *bool  `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var maxPosition int
	db.Model(&courseModels.Lesson{}).Where("chapter_id = ?", chapter.ID).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPosition)

	lesson := courseModels.Lesson{
		ChapterID:   chapter.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Position:    maxPosition + 1,
	}
	if reqData.IsFree != nil {
		lesson.IsFree = *reqData.IsFree
	}

	if err := db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson applies a partial field update to a lesson
func AdminUpdateLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	lessonID := c.Locals("lessonID").(int)
	db := database.Database.Db

	lesson, err := ownedLesson(db, courseID, chapterID, lessonID, userID)
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
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
		if err := db.Model(lesson).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminUpdateLessonVideo ingests a new video through the media host and
// stores the returned opaque ids on the lesson. Creating the new asset is
// the primary action and surfaces failures; deleting the replaced asset
// is best-effort cleanup.
func AdminUpdateLessonVideo(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	lessonID := c.Locals("lessonID").(int)
	db := database.Database.Db

	lesson, err := ownedLesson(db, courseID, chapterID, lessonID, userID)
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	reqData, ok := c.Locals("validatedVideo").(*struct {
		VideoURL string `json:"video_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	assetID, playbackID, err := utils.CreateMuxAsset(reqData.VideoURL)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Video host rejected the upload!", nil)
	}

	oldAssetID := lesson.MuxAssetID

	updates := map[string]interface{}{
		"video_url":    reqData.VideoURL,
		"mux_asset_id": assetID,
		"playback_id":  playbackID,
	}
	if err := db.Model(lesson).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	if oldAssetID != "" && oldAssetID != assetID {
		utils.DeleteMuxAsset(oldAssetID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson video updated successfully!", lesson)
}

// AdminDeleteLesson deletes a lesson and its labs
func AdminDeleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	lessonID := c.Locals("lessonID").(int)
	db := database.Database.Db

	lesson, err := ownedLesson(db, courseID, chapterID, lessonID, userID)
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&courseModels.Lab{}).Error; err != nil {
			return err
		}
		return tx.Delete(lesson).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	if lesson.MuxAssetID != "" {
		utils.DeleteMuxAsset(lesson.MuxAssetID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AdminReorderLessons rewrites lesson positions within a chapter, same
// contract as chapter reorder
func AdminReorderLessons(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder lessons!", nil)
	}

	reqData, ok := c.Locals("validatedReorder").(*struct {
		List []uint `json:"list"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var count int64
	if err := db.Model(&courseModels.Lesson{}).Where("chapter_id = ?", chapter.ID).Count(&count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder lessons!", nil)
	}
	if int(count) != len(reqData.List) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reorder list must contain every lesson of the chapter exactly once!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i, lessonID := range reqData.List {
			res := tx.Model(&courseModels.Lesson{}).
				Where("id = ? AND chapter_id = ?", lessonID, chapter.ID).
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
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reorder list contains a lesson from another chapter!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons reordered successfully!", nil)
}
