package courseValidator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kwa/middleware"
)

var validate = validator.New()

// idParam parses one positive-integer route param into Locals under localKey
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

// CourseParam validates the :course_id route param
func CourseParam() fiber.Handler {
	return idParam("course_id", "courseID", "Course ID")
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			ImageURL    string   `json:"image_url"`
			Price       *float64 `json:"price"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.ImageURL != "" {
			if err := validate.Var(reqData.ImageURL, "url"); err != nil {
				errors["image_url"] = "Image URL must be a valid URL!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string  `json:"title"`
			Description *string  `json:"description"`
			ImageURL    *string  `json:"image_url"`
			Price       *float64 `json:"price"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.ImageURL != nil && *reqData.ImageURL != "" {
			if err := validate.Var(*reqData.ImageURL, "url"); err != nil {
				errors["image_url"] = "Image URL must be a valid URL!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsPublished *bool `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsPublished == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"is_published": "is_published is required!",
			})
		}

		c.Locals("validatedPublish", reqData)
		return c.Next()
	}
}

// Reorder validates the client-supplied id order for chapters or lessons
func Reorder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			List []uint `json:"list"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.List) == 0 {
			errors["list"] = "Reorder list cannot be empty!"
		}
		seen := make(map[uint]bool, len(reqData.List))
		for _, id := range reqData.List {
			if id == 0 {
				errors["list"] = "Reorder list contains an invalid id!"
				break
			}
			if seen[id] {
				errors["list"] = "Reorder list contains a duplicate id!"
				break
			}
			seen[id] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}
