package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kwa/middleware"
)

// LessonParam validates the :lesson_id route param
func LessonParam() fiber.Handler {
	return idParam("lesson_id", "lessonID", "Lesson ID")
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			IsFree      *bool  `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title is required!",
			})
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			IsFree      *bool   `json:"is_free"`
			IsPublished *bool   `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title cannot be empty!",
			})
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

func UpdateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			VideoURL string `json:"video_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Var(reqData.VideoURL, "required,url"); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"video_url": "A valid video URL is required!",
			})
		}

		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// SetProgress validates the completion toggle body
func SetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsCompleted *bool `json:"is_completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsCompleted == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"is_completed": "is_completed is required!",
			})
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
