package course

import (
	"time"

	"gorm.io/gorm"
)

// Subscription statuses mirrored from Stripe
const (
	SubscriptionActive   = "ACTIVE"
	SubscriptionPastDue  = "PAST_DUE"
	SubscriptionCanceled = "CANCELED"
)

// Subscription mirrors the user's Stripe membership subscription
type Subscription struct {
	gorm.Model
	UserID               uint       `json:"user_id" gorm:"index;not null"`
	StripeCustomerID     string     `json:"stripe_customer_id" gorm:"index"`
	StripeSubscriptionID string     `json:"stripe_subscription_id" gorm:"unique"`
	PriceID              string     `json:"price_id"`
	Status               string     `json:"status" gorm:"default:'ACTIVE'"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
}
