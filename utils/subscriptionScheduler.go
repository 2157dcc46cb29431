package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/subscription"

	"kwa/database"
	"kwa/models"
	courseModels "kwa/models/course"
)

// InitializeSubscriptionScheduler sets up the daily subscription reconciler
func InitializeSubscriptionScheduler() {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Run daily at 6 AM to reconcile local rows against Stripe
	c.AddFunc("0 6 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily subscription reconciliation...")
		ReconcileSubscriptions()
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 6 AM")
}

// ReconcileSubscriptions re-reads every non-canceled subscription from
// Stripe and updates the local mirror. Webhooks keep the mirror current in
// normal operation; this pass catches events lost while the service was
// down. Per-subscription failures are logged and skipped.
func ReconcileSubscriptions() {
	db := database.Database.Db

	var subs []courseModels.Subscription
	if err := db.Where("status <> ?", courseModels.SubscriptionCanceled).Find(&subs).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Reconciling %d subscriptions", len(subs))

	for _, sub := range subs {
		remote, err := subscription.Get(sub.StripeSubscriptionID, nil)
		if err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching subscription %s: %v", sub.StripeSubscriptionID, err)
			continue
		}

		status := MapStripeSubscriptionStatus(remote.Status)
		periodEnd := time.Unix(remote.CurrentPeriodEnd, 0)

		if status == sub.Status && sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.Equal(periodEnd) {
			continue
		}

		sub.Status = status
		sub.CurrentPeriodEnd = &periodEnd
		if err := db.Save(&sub).Error; err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error saving subscription %s: %v", sub.StripeSubscriptionID, err)
			continue
		}

		if status == courseModels.SubscriptionPastDue {
			var user models.User
			if err := db.Where("id = ?", sub.UserID).First(&user).Error; err != nil {
				continue
			}
			SendSubscriptionPastDueEmail(user.Email, user.DisplayName())
		}
	}
}

// MapStripeSubscriptionStatus folds Stripe's status set into the three the
// academy cares about
func MapStripeSubscriptionStatus(status stripeapi.SubscriptionStatus) string {
	switch status {
	case stripeapi.SubscriptionStatusActive, stripeapi.SubscriptionStatusTrialing:
		return courseModels.SubscriptionActive
	case stripeapi.SubscriptionStatusPastDue, stripeapi.SubscriptionStatusUnpaid, stripeapi.SubscriptionStatusIncomplete:
		return courseModels.SubscriptionPastDue
	default:
		return courseModels.SubscriptionCanceled
	}
}
