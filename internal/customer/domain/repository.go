package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*Mapping, error)
	FindByProviderID(ctx context.Context, db *gorm.DB, providerCustomerID string) (*Mapping, error)
	Upsert(ctx context.Context, db *gorm.DB, mapping *Mapping) error
	UpdateProviderID(ctx context.Context, db *gorm.DB, userID uuid.UUID, providerCustomerID string) error
}
