package paymentController

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	stripeapi "github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"

	"kwa/config"
	"kwa/database"
	"kwa/middleware"
	"kwa/models"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
)

// CreateCheckoutSession starts a Stripe checkout for a priced course. The
// session metadata carries {userId, courseId}; the webhook turns the
// completed session into the enrollment.
func CreateCheckoutSession(c *fiber.Ctx) error {
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

	if crs.IsFree() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is free. Use the enroll endpoint.", nil)
	}

	enrolled, err := courseService.IsEnrolled(db, userID, crs.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start checkout!", nil)
	}
	if enrolled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Already enrolled in this course!", nil)
	}

	params := &stripeapi.CheckoutSessionParams{
		CustomerEmail: stripeapi.String(user.Email),
		Mode:          stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL:    stripeapi.String(fmt.Sprintf("%s/courses/%d?success=1", config.AppConfig.AppURL, crs.ID)),
		CancelURL:     stripeapi.String(fmt.Sprintf("%s/courses/%d?canceled=1", config.AppConfig.AppURL, crs.ID)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency: stripeapi.String("usd"),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripeapi.String(crs.Title),
						Description: stripeapi.String(crs.Description),
					},
					UnitAmount: stripeapi.Int64(int64(*crs.Price * 100)), // cents
				},
				Quantity: stripeapi.Int64(1),
			},
		},
	}
	params.AddMetadata("userId", fmt.Sprintf("%d", userID))
	params.AddMetadata("courseId", fmt.Sprintf("%d", crs.ID))

	checkoutSession, err := session.New(params)
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to start checkout!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"url": checkoutSession.URL,
	})
}

// CreatePortalSession opens the Stripe billing portal for the user's
// subscription management
func CreatePortalSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	customerID := user.StripeCustomerID
	if customerID == "" {
		cust, err := customer.New(&stripeapi.CustomerParams{
			Email: stripeapi.String(user.Email),
			Name:  stripeapi.String(user.Name),
		})
		if err != nil {
			log.Printf("Error creating Stripe customer for user %d: %v", userID, err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to open billing portal!", nil)
		}
		customerID = cust.ID
		database.Database.Db.Model(&user).Update("stripe_customer_id", customerID)
	}

	portal, err := portalsession.New(&stripeapi.BillingPortalSessionParams{
		Customer:  stripeapi.String(customerID),
		ReturnURL: stripeapi.String(config.AppConfig.AppURL + "/dashboard"),
	})
	if err != nil {
		log.Printf("Error creating portal session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to open billing portal!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Portal session created!", fiber.Map{
		"url": portal.URL,
	})
}
