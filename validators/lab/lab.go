package labValidator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kwa/middleware"
)

var validate = validator.New()

func idParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}

		c.Locals(localKey, id)
		return c.Next()
	}
}

// LabParam validates the :lab_id route param
func LabParam() fiber.Handler {
	return idParam("lab_id", "labID", "Lab ID")
}

// SubmissionParam validates the :submission_id route param
func SubmissionParam() fiber.Handler {
	return idParam("submission_id", "submissionID", "Submission ID")
}

func CreateLab() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.MaxPoints < 0 {
			errors["max_points"] = "Max points cannot be negative!"
		}
		if reqData.IsGraded && reqData.MaxPoints == 0 {
			errors["max_points"] = "A graded lab needs a max points value!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLab", reqData)
		return c.Next()
	}
}

func UpdateLab() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}
		if reqData.MaxPoints != nil && *reqData.MaxPoints < 0 {
			errors["max_points"] = "Max points cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLabUpdate", reqData)
		return c.Next()
	}
}

func SubmitLab() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TextResponse string   `json:"text_response"`
			PhotoURLs    []string `json:"photo_urls"`
			FileURLs     []string `json:"file_urls"`
			VideoURL     string   `json:"video_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.VideoURL != "" {
			if err := validate.Var(reqData.VideoURL, "url"); err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"video_url": "Video URL must be a valid URL!",
				})
			}
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

func Grade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Grade    *int   `json:"grade"`
			Feedback string `json:"feedback"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Grade == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"grade": "Grade is required!",
			})
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}
