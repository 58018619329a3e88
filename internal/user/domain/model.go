package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is the auth-system-owned profile row. This service only enriches it
// with billing details copied from the provider on subscription creation.
type User struct {
	ID             uuid.UUID         `gorm:"column:id;primaryKey" json:"id"`
	FullName       *string           `gorm:"column:full_name" json:"full_name"`
	AvatarURL      *string           `gorm:"column:avatar_url" json:"avatar_url"`
	BillingAddress datatypes.JSONMap `gorm:"column:billing_address" json:"billing_address"`
	PaymentMethod  datatypes.JSONMap `gorm:"column:payment_method" json:"payment_method"`
	CreatedAt      time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
