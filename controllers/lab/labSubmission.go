package labController

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kwa/database"
	"kwa/middleware"
	"kwa/models"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
	"kwa/utils"
)

// labForUser loads a lab and checks that its lesson is viewable by the
// user right now (free lesson or enrolled). Locked labs are not found.
func labForUser(db *gorm.DB, labID int, userID uint) (*courseModels.Lab, error) {
	var lab courseModels.Lab
	if err := db.Where("id = ?", labID).First(&lab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, courseService.ErrNotFound
		}
		return nil, err
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_published = ?", lab.LessonID, true).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, courseService.ErrNotFound
		}
		return nil, err
	}

	var chapter courseModels.Chapter
	if err := db.Where("id = ?", lesson.ChapterID).First(&chapter).Error; err != nil {
		return nil, err
	}

	viewable, err := courseService.CanViewLesson(db, userID, lesson, chapter)
	if err != nil {
		return nil, err
	}
	if !viewable {
		return nil, courseService.ErrNotEnrolled
	}
	return &lab, nil
}

// SubmitLab records the user's evidence for a lab. One row per
// (lab, user): resubmitting overwrites the previous evidence and bumps
// submittedAt, it never creates a second row.
func SubmitLab(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	labID := c.Locals("labID").(int)
	db := database.Database.Db

	lab, err := labForUser(db, labID, userID)
	if err != nil {
		switch err {
		case courseService.ErrNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lab not found!", nil)
		case courseService.ErrNotEnrolled:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit lab!", nil)
		}
	}

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		TextResponse string   `json:"text_response"`
		PhotoURLs    []string `json:"photo_urls"`
		FileURLs     []string `json:"file_urls"`
		VideoURL     string   `json:"video_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Every evidence kind the lab requires must be present
	missing := map[string]string{}
	if lab.NeedsText && reqData.TextResponse == "" {
		missing["text_response"] = "A written response is required for this lab!"
	}
	if lab.NeedsPhoto && len(reqData.PhotoURLs) == 0 {
		missing["photo_urls"] = "At least one photo is required for this lab!"
	}
	if lab.NeedsVideo && reqData.VideoURL == "" {
		missing["video_url"] = "A video is required for this lab!"
	}
	if lab.NeedsFile && len(reqData.FileURLs) == 0 {
		missing["file_urls"] = "At least one file is required for this lab!"
	}
	if len(missing) > 0 {
		return middleware.ValidationErrorResponse(c, missing)
	}

	now := time.Now()

	var submission courseModels.LabSubmission
	err = db.Where("lab_id = ? AND user_id = ?", lab.ID, userID).First(&submission).Error
	if err == nil {
		submission.TextResponse = reqData.TextResponse
		submission.PhotoURLs = datatypes.NewJSONSlice(reqData.PhotoURLs)
		submission.FileURLs = datatypes.NewJSONSlice(reqData.FileURLs)
		submission.VideoURL = reqData.VideoURL
		submission.Status = courseModels.SubmissionSubmitted
		submission.SubmittedAt = &now
		// Resubmission voids the previous grade
		submission.Grade = nil
		submission.Feedback = ""
		submission.GradedAt = nil
		submission.GradedBy = nil

		if err := db.Save(&submission).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit lab!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lab resubmitted successfully!", submission)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit lab!", nil)
	}

	submission = courseModels.LabSubmission{
		LabID:        lab.ID,
		UserID:       userID,
		TextResponse: reqData.TextResponse,
		PhotoURLs:    datatypes.NewJSONSlice(reqData.PhotoURLs),
		FileURLs:     datatypes.NewJSONSlice(reqData.FileURLs),
		VideoURL:     reqData.VideoURL,
		Status:       courseModels.SubmissionSubmitted,
		SubmittedAt:  &now,
	}
	if err := db.Create(&submission).Error; err != nil {
		// Concurrent first submission for the same (lab, user): overwrite
		// the winner's row, same as a resubmission.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("lab_id = ? AND user_id = ?", lab.ID, userID).First(&submission).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit lab!", nil)
			}
			submission.TextResponse = reqData.TextResponse
			submission.PhotoURLs = datatypes.NewJSONSlice(reqData.PhotoURLs)
			submission.FileURLs = datatypes.NewJSONSlice(reqData.FileURLs)
			submission.VideoURL = reqData.VideoURL
			submission.Status = courseModels.SubmissionSubmitted
			submission.SubmittedAt = &now
			if err := db.Save(&submission).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit lab!", nil)
			}
		} else {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit lab!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lab submitted successfully!", submission)
}

// GetMySubmission returns the user's own submission for a lab
func GetMySubmission(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	labID := c.Locals("labID").(int)
	db := database.Database.Db

	lab, err := labForUser(db, labID, userID)
	if err != nil {
		switch err {
		case courseService.ErrNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lab not found!", nil)
		case courseService.ErrNotEnrolled:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submission!", nil)
		}
	}

	var submission courseModels.LabSubmission
	if err := db.Where("lab_id = ? AND user_id = ?", lab.ID, userID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "No submission yet.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully!", submission)
}

// UploadEvidence stores one uploaded lab-evidence file and returns its URL
func UploadEvidence(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	labID := c.Locals("labID").(int)
	db := database.Database.Db

	if _, err := labForUser(db, labID, userID); err != nil {
		switch err {
		case courseService.ErrNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lab not found!", nil)
		case courseService.ErrNotEnrolled:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
		}
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	url, err := utils.SaveUploadedFile(file, "./public/uploads")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File uploaded successfully!", fiber.Map{"url": url})
}

// GradeSubmission records a grade on a submitted lab. Grade, feedback,
// gradedAt and gradedBy are written together or not at all.
func GradeSubmission(c *fiber.Ctx) error {
	graderID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(int)
	db := database.Database.Db

	var submission courseModels.LabSubmission
	if err := db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	if submission.Status == courseModels.SubmissionDraft {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Submission has not been submitted yet!", nil)
	}

	var lab courseModels.Lab
	if err := db.Where("id = ?", submission.LabID).First(&lab).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}
	if !lab.IsGraded {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This lab is not graded!", nil)
	}

	reqData, ok := c.Locals("validatedGrade").(*struct {
		Grade    *int   `json:"grade"`
		Feedback string `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if *reqData.Grade < 0 || *reqData.Grade > lab.MaxPoints {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"grade": "Grade must be between 0 and the lab's max points!",
		})
	}

	now := time.Now()
	submission.Grade = reqData.Grade
	submission.Feedback = reqData.Feedback
	submission.Status = courseModels.SubmissionGraded
	submission.GradedAt = &now
	submission.GradedBy = &graderID

	if err := db.Save(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}
