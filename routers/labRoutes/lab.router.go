package labRoutes

import (
	labControllers "kwa/controllers/lab"
	"kwa/middleware"
	labValidators "kwa/validators/lab"

	"github.com/gofiber/fiber/v2"
)

func SetupLabRoutes(app *fiber.App) {
	labGroup := app.Group("/lab")

	// Grading is registered first so the literal segment wins over :lab_id
	labGroup.Patch("/submission/:submission_id/grade", middleware.JWTMiddleware, middleware.AdminOnly, labValidators.SubmissionParam(), labValidators.Grade(), labControllers.GradeSubmission)

	labGroup.Post("/:lab_id/submission", middleware.JWTMiddleware, labValidators.LabParam(), labValidators.SubmitLab(), labControllers.SubmitLab)
	labGroup.Get("/:lab_id/submission", middleware.JWTMiddleware, labValidators.LabParam(), labControllers.GetMySubmission)
	labGroup.Post("/:lab_id/evidence", middleware.JWTMiddleware, labValidators.LabParam(), labControllers.UploadEvidence)
}
