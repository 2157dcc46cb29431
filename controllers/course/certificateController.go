package controllers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kwa/database"
	"kwa/middleware"
	"kwa/models"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
	"kwa/utils"
)

// DownloadCertificate issues (idempotently) and streams the completion
// certificate PDF. First creation sends the congratulations email; every
// later call just re-renders the document with the stored issuedAt and
// the user's and course's current names.
func DownloadCertificate(c *fiber.Ctx) error {
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
	if err := db.Where("id = ?", courseID).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	cert, created, err := courseService.IssueCertificate(db, userID, uint(courseID))
	if err != nil {
		switch err {
		case courseService.ErrNotEnrolled:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		case courseService.ErrCourseNotCompleted:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
		}
	}

	if created {
		utils.SendCertificateEmail(user.Email, user.DisplayName(), crs.Title, crs.ID)
	}

	pdfBytes, err := utils.GenerateCertificatePDF(utils.CertificateData{
		StudentName:  user.DisplayName(),
		CourseName:   crs.Title,
		IssuedAt:     cert.IssuedAt,
		SerialNumber: cert.SerialNumber,
	})
	if err != nil {
		log.Printf("Error rendering certificate %s: %v", cert.SerialNumber, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	filename := fmt.Sprintf("certificate-%s.pdf", strings.ReplaceAll(crs.Title, " ", "-"))
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	var certificates []courseModels.Certificate
	if err := db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		result[i] = CertificateWithCourse{Certificate: cert}
		var crs courseModels.Course
		if err := db.Where("id = ?", cert.CourseID).First(&crs).Error; err == nil {
			result[i].CourseTitle = crs.Title
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}
