package controllers

import (
	"github.com/gofiber/fiber/v2"

	"kwa/database"
	"kwa/middleware"
	"kwa/models"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
)

// EnrollInCourse enrolls the user in a free course. Priced courses go
// through Stripe checkout; their enrollment is created by the webhook.
// Enrolling twice is not an error: the existing row comes back as-is.
func EnrollInCourse(c *fiber.Ctx) error {
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

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_published = ?", courseID, true).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !crs.IsFree() {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "This course requires payment. Use the checkout endpoint.", nil)
	}

	enrollment, created, err := courseService.Enroll(db, userID, uint(courseID))
	if err != nil {
		if err == courseService.ErrNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	message := "Enrolled in course successfully!"
	if !created {
		message = "Already enrolled in this course."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, enrollment)
}

// GetEnrollments lists the user's enrollments with per-course progress,
// for the student dashboard
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle    string                 `json:"course_title"`
		CourseImageURL string                 `json:"course_image_url"`
		Progress       courseService.Progress `json:"progress"`
		HasCertificate bool                   `json:"has_certificate"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		result[i] = EnrollmentWithCourse{Enrollment: e}

		var crs courseModels.Course
		if err := db.Where("id = ?", e.CourseID).First(&crs).Error; err == nil {
			result[i].CourseTitle = crs.Title
			result[i].CourseImageURL = crs.ImageURL
		}

		progress, err := courseService.ComputeProgress(db, userID, e.CourseID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
		}
		result[i].Progress = progress

		var cert courseModels.Certificate
		if err := db.Where("user_id = ? AND course_id = ?", userID, e.CourseID).First(&cert).Error; err == nil {
			result[i].HasCertificate = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
