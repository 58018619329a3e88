package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrialing          SubscriptionStatus = "trialing"
	SubscriptionStatusActive            SubscriptionStatus = "active"
	SubscriptionStatusCanceled          SubscriptionStatus = "canceled"
	SubscriptionStatusIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusPastDue           SubscriptionStatus = "past_due"
	SubscriptionStatusUnpaid            SubscriptionStatus = "unpaid"
	SubscriptionStatusPaused            SubscriptionStatus = "paused"
)

// Subscription mirrors provider subscription state. CurrentPeriodEnd doubles
// as the logical version clock: a stored row with a newer-or-equal value
// wins over any later delivery carrying an older one.
type Subscription struct {
	ID                 string             `gorm:"column:id;primaryKey" json:"id"`
	UserID             uuid.UUID          `gorm:"column:user_id" json:"user_id"`
	Status             SubscriptionStatus `gorm:"column:status" json:"status"`
	Metadata           datatypes.JSONMap  `gorm:"column:metadata" json:"metadata"`
	PriceID            *string            `gorm:"column:price_id" json:"price_id"`
	Quantity           *int64             `gorm:"column:quantity" json:"quantity"`
	CancelAtPeriodEnd  bool               `gorm:"column:cancel_at_period_end" json:"cancel_at_period_end"`
	Created            time.Time          `gorm:"column:created" json:"created"`
	CurrentPeriodStart time.Time          `gorm:"column:current_period_start" json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `gorm:"column:current_period_end" json:"current_period_end"`
	EndedAt            *time.Time         `gorm:"column:ended_at" json:"ended_at"`
	CancelAt           *time.Time         `gorm:"column:cancel_at" json:"cancel_at"`
	CanceledAt         *time.Time         `gorm:"column:canceled_at" json:"canceled_at"`
	TrialStart         *time.Time         `gorm:"column:trial_start" json:"trial_start"`
	TrialEnd           *time.Time         `gorm:"column:trial_end" json:"trial_end"`
}

func (Subscription) TableName() string { return "subscriptions" }

// UserPlan is the read-side summary served to the application.
type UserPlan struct {
	StripeCustomerID string     `json:"stripe_customer_id"`
	SubscriptionID   string     `json:"stripe_subscription_id"`
	PriceID          string     `json:"stripe_price_id"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`
	IsPro            bool       `json:"is_pro"`
}
