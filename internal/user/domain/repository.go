package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*User, error)
	UpdateBillingDetails(ctx context.Context, db *gorm.DB, id uuid.UUID, billingAddress, paymentMethod datatypes.JSONMap) error
}
