package paymentController

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"kwa/config"
	"kwa/database"
	"kwa/middleware"
	"kwa/models"
	courseModels "kwa/models/course"
	courseService "kwa/services/course"
	"kwa/utils"
)

// HandleStripeWebhook consumes Stripe events. Delivery is at-least-once,
// so every branch is an idempotent function of the event content: a
// replayed checkout completion finds the existing enrollment and sends no
// second email. A bad signature is fatal with no state change.
func HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEvent(payload, signature, config.AppConfig.StripeWebhookSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid signature!", nil)
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripeapi.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Printf("Error parsing checkout session: %v", err)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Malformed event payload!", nil)
		}
		if err := handleCheckoutCompleted(session); err != nil {
			log.Printf("Error handling checkout completion: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process event!", nil)
		}

	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripeapi.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			log.Printf("Error parsing subscription: %v", err)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Malformed event payload!", nil)
		}
		if err := handleSubscriptionChanged(sub); err != nil {
			log.Printf("Error handling subscription change: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process event!", nil)
		}

	default:
		// Unhandled event types are acknowledged so Stripe stops retrying
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event received.", nil)
}

// handleCheckoutCompleted turns a paid checkout into an enrollment. The
// enrollment email rides on the created flag so a duplicate delivery of
// the same event cannot double-email.
func handleCheckoutCompleted(session stripeapi.CheckoutSession) error {
	userIDStr := session.Metadata["userId"]
	courseIDStr := session.Metadata["courseId"]
	if userIDStr == "" || courseIDStr == "" {
		log.Printf("Checkout session %s is missing metadata", session.ID)
		return nil // nothing to do, and retrying will not help
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return err
	}
	courseID, err := strconv.ParseUint(courseIDStr, 10, 64)
	if err != nil {
		return err
	}

	db := database.Database.Db

	_, created, err := courseService.Enroll(db, uint(userID), uint(courseID))
	if err != nil {
		return err
	}
	log.Printf("Enrollment processed: user %d, course %d (created=%v)", userID, courseID, created)

	if created {
		var user models.User
		var crs courseModels.Course
		if err := db.Where("id = ?", userID).First(&user).Error; err == nil {
			if err := db.Where("id = ?", courseID).First(&crs).Error; err == nil {
				utils.SendEnrollmentEmail(user.Email, user.DisplayName(), crs.Title, crs.ID)
			}
		}
	}
	return nil
}

// handleSubscriptionChanged mirrors the Stripe subscription into the
// local table, keyed on the Stripe subscription id
func handleSubscriptionChanged(remote stripeapi.Subscription) error {
	db := database.Database.Db

	var user models.User
	if err := db.Where("stripe_customer_id = ?", remote.Customer.ID).First(&user).Error; err != nil {
		log.Printf("Subscription %s belongs to unknown customer %s", remote.ID, remote.Customer.ID)
		return nil
	}

	status := utils.MapStripeSubscriptionStatus(remote.Status)
	periodEnd := time.Unix(remote.CurrentPeriodEnd, 0)
	priceID := ""
	if len(remote.Items.Data) > 0 && remote.Items.Data[0].Price != nil {
		priceID = remote.Items.Data[0].Price.ID
	}

	var sub courseModels.Subscription
	err := db.Where("stripe_subscription_id = ?", remote.ID).First(&sub).Error
	if err != nil {
		sub = courseModels.Subscription{
			UserID:               user.ID,
			StripeCustomerID:     remote.Customer.ID,
			StripeSubscriptionID: remote.ID,
		}
	}

	sub.PriceID = priceID
	sub.Status = status
	sub.CurrentPeriodEnd = &periodEnd

	return db.Save(&sub).Error
}
