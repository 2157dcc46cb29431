package paymentRoutes

import (
	paymentControllers "kwa/controllers/payment"
	"kwa/middleware"
	courseValidators "kwa/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	// Stripe calls this one, so it carries no JWT middleware
	paymentGroup.Post("/webhook/stripe", paymentControllers.HandleStripeWebhook)

	paymentGroup.Post("/checkout/:course_id", middleware.JWTMiddleware, courseValidators.CourseParam(), paymentControllers.CreateCheckoutSession)
	paymentGroup.Post("/portal", middleware.JWTMiddleware, paymentControllers.CreatePortalSession)
}
