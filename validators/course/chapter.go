package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kwa/middleware"
)

// ChapterParam validates the :chapter_id route param
func ChapterParam() fiber.Handler {
	return idParam("chapter_id", "chapterID", "Chapter ID")
}

func CreateChapter() fiber.Handler {
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

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

func UpdateChapter() fiber.Handler {
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

		c.Locals("validatedChapterUpdate", reqData)
		return c.Next()
	}
}
