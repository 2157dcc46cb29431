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

// ownedCourse fetches a course only if the caller is its owning
// instructor. Anyone else sees not-found, never forbidden.
func ownedCourse(db *gorm.DB, courseID int, userID uint) (*courseModels.Course, error) {
	var crs courseModels.Course
	err := db.Where("id = ? AND user_id = ?", courseID, userID).First(&crs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, courseService.ErrNotFound
		}
		return nil, err
	}
	return &crs, nil
}

// AdminCreateCourse creates a new draft course owned by the caller
func AdminCreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ImageURL    string   `json:"image_url"`
		Price       *float64 `json:"price"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	crs := courseModels.Course{
		UserID:      userID,
		Title:       reqData.Title,
		Description: reqData.Description,
		ImageURL:    reqData.ImageURL,
		Price:       reqData.Price,
	}

	if err := database.Database.Db.Create(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", crs)
}

// AdminUpdateCourse applies a partial field update to an owned course
func AdminUpdateCourse(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		ImageURL    *string  `json:"image_url"`
		Price       *float64 `json:"price"`
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
	if reqData.ImageURL != nil {
		updates["image_url"] = *reqData.ImageURL
	}
	if reqData.Price != nil {
		updates["price"] = *reqData.Price
	}

	if len(updates) > 0 {
		if err := db.Model(crs).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// AdminDeleteCourse deletes a course and cascades to its chapters and lessons
func AdminDeleteCourse(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&courseModels.Chapter{}).Where("course_id = ?", crs.ID).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}
		if len(chapterIDs) > 0 {
			var lessonIDs []uint
			if err := tx.Model(&courseModels.Lesson{}).Where("chapter_id IN ?", chapterIDs).Pluck("id", &lessonIDs).Error; err != nil {
				return err
			}
			if len(lessonIDs) > 0 {
				if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&courseModels.Lab{}).Error; err != nil {
					return err
				}
				if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&courseModels.Lesson{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("course_id = ?", crs.ID).Delete(&courseModels.Chapter{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(crs).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminPublishCourse toggles the course publish flag
func AdminPublishCourse(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	reqData, ok := c.Locals("validatedPublish").(*struct {
		IsPublished *bool `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// A course needs at least one published chapter with a published lesson
	// before it can go live
	if *reqData.IsPublished {
		lessonIDs, err := courseService.PublishedLessonIDs(db, crs.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
		}
		if len(lessonIDs) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Publish at least one chapter with a published lesson first!", nil)
		}
	}

	if err := db.Model(crs).Update("is_published", *reqData.IsPublished).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	message := "Course published successfully!"
	if !*reqData.IsPublished {
		message = "Course unpublished successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, crs)
}

// AdminGetAllCourses lists the caller's courses regardless of publish state
func AdminGetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// AdminGetCourseDetails returns the full unfiltered course tree to its owner
func AdminGetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	tree, err := courseService.GetOwnedCourse(database.Database.Db, uint(courseID), userID)
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", tree)
}
