package controllers

import (
	"github.com/gofiber/fiber/v2"

	"kwa/database"
	"kwa/middleware"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
)

// AdminCreateLab attaches a lab to a lesson
func AdminCreateLab(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lab!", nil)
	}

	reqData, ok := c.Locals("validatedLab").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Instructions string `json:"instructions"`
		NeedsText    bool   `json:"needs_text"`
		NeedsPhoto   bool   `json:"needs_photo"`
		NeedsVideo   bool   `json:"needs_video"`
		NeedsFile    bool   `json:"needs_file"`
		IsGraded     bool   `json:"is_graded"`
		MaxPoints    int    `json:"max_points"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var maxPosition int
	db.Model(&courseModels.Lab{}).Where("lesson_id = ?", lesson.ID).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPosition)

	lab := courseModels.Lab{
		LessonID:     lesson.ID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Instructions: reqData.Instructions,
		NeedsText:    reqData.NeedsText,
		NeedsPhoto:   reqData.NeedsPhoto,
		NeedsVideo:   reqData.NeedsVideo,
		NeedsFile:    reqData.NeedsFile,
		IsGraded:     reqData.IsGraded,
		MaxPoints:    reqData.MaxPoints,
		Position:     maxPosition + 1,
	}

	if err := db.Create(&lab).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lab!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lab created successfully!", lab)
}

// AdminUpdateLab applies a partial field update to a lab
func AdminUpdateLab(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	lessonID := c.Locals("lessonID").(int)
	labID := c.Locals("labID").(int)
	db := database.Database.Db

	if _, err := ownedLesson(db, courseID, chapterID, lessonID, userID); err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lab not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lab!", nil)
	}

	var lab courseModels.Lab
	if err := db.Where("id = ? AND lesson_id = ?", labID, lessonID).First(&lab).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lab not found!", nil)
	}

	reqData, ok := c.Locals("validatedLabUpdate").(*struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		Instructions *string `json:"instructions"`
		NeedsText    *bool   `json:"needs_text"`
		NeedsPhoto   *bool   `json:"needs_photo"`
		NeedsVideo   *bool   `json:"needs_video"`
		NeedsFile    *bool   `json:"needs_file"`
		IsGraded     *bool   `json:"is_graded"`
		MaxPoints    *int    `json:"max_points"`
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
	if reqData.Instructions != nil {
		updates["instructions"] = *reqData.Instructions
	}
	if reqData.NeedsText != nil {
		updates["needs_text"] = *reqData.NeedsText
	}
	if reqData.NeedsPhoto != nil {
		updates["needs_photo"] = *reqData.NeedsPhoto
	}
	if reqData.NeedsVideo != nil {
		updates["needs_video"] = *reqData.NeedsVideo
	}
	if reqData.NeedsFile != nil {
		updates["needs_file"] = *reqData.NeedsFile
	}
	if reqData.IsGraded != nil {
		updates["is_graded"] = *reqData.IsGraded
	}
	if reqData.MaxPoints != nil {
		updates["max_points"] = *reqData.MaxPoints
	}

	if len(updates) > 0 {
		if err := db.Model(&lab).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lab!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lab updated successfully!", lab)
}

// AdminDeleteLab removes a lab and its submissions
func AdminDeleteLab(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	lessonID := c.Locals("lessonID").(int)
	labID := c.Locals("labID").(int)
	db := database.Database.Db

	if _, err := ownedLesson(db, courseID, chapterID, lessonID, userID); err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lab not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lab!", nil)
	}

	var lab courseModels.Lab
	if err := db.Where("id = ? AND lesson_id = ?", labID, lessonID).First(&lab).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lab not found!", nil)
	}

	if err := db.Where("lab_id = ?", lab.ID).Delete(&courseModels.LabSubmission{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lab!", nil)
	}
	if err := db.Delete(&lab).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lab!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lab deleted successfully!", nil)
}
