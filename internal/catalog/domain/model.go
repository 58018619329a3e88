package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Product mirrors a provider catalog product. The id is provider-assigned;
// the last delivered event for a given id wins.
type Product struct {
	ID          string            `gorm:"column:id;primaryKey" json:"id"`
	Active      bool              `gorm:"column:active" json:"active"`
	Name        string            `gorm:"column:name" json:"name"`
	Description *string           `gorm:"column:description" json:"description"`
	Image       *string           `gorm:"column:image" json:"image"`
	Metadata    datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`
	CreatedAt   time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type BillingType string

const (
	BillingTypeOneTime   BillingType = "one_time"
	BillingTypeRecurring BillingType = "recurring"
)

// Price mirrors a provider catalog price. ProductID must reference an
// existing Product row; a violation signals that the price event was
// delivered before its parent product event.
type Price struct {
	ID              string            `gorm:"column:id;primaryKey" json:"id"`
	ProductID       string            `gorm:"column:product_id" json:"product_id"`
	Active          bool              `gorm:"column:active" json:"active"`
	Description     *string           `gorm:"column:description" json:"description"`
	UnitAmount      *int64            `gorm:"column:unit_amount" json:"unit_amount"`
	Currency        string            `gorm:"column:currency" json:"currency"`
	BillingType     BillingType       `gorm:"column:billing_type" json:"billing_type"`
	BillingInterval *string           `gorm:"column:billing_interval" json:"billing_interval"`
	IntervalCount   *int64            `gorm:"column:interval_count" json:"interval_count"`
	TrialPeriodDays *int64            `gorm:"column:trial_period_days" json:"trial_period_days"`
	Metadata        datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`
	CreatedAt       time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (Price) TableName() string { return "prices" }
