package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mapping links an internal user identity to the billing provider's
// customer identity. At most one row per user; the provider customer id is
// globally unique once assigned.
type Mapping struct {
	ID               uuid.UUID `gorm:"column:id;primaryKey" json:"id"`
	StripeCustomerID string    `gorm:"column:stripe_customer_id" json:"stripe_customer_id"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Mapping) TableName() string { return "customers" }
