package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/subsynclabs/subsync/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*domain.Mapping, error) {
	var m domain.Mapping
	err := db.WithContext(ctx).Raw(
		`SELECT id, stripe_customer_id, created_at, updated_at
		 FROM customers WHERE id = ?`,
		userID,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) FindByProviderID(ctx context.Context, db *gorm.DB, providerCustomerID string) (*domain.Mapping, error) {
	var m domain.Mapping
	err := db.WithContext(ctx).Raw(
		`SELECT id, stripe_customer_id, created_at, updated_at
		 FROM customers WHERE stripe_customer_id = ?`,
		providerCustomerID,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, m *domain.Mapping) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (id, stripe_customer_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   stripe_customer_id = EXCLUDED.stripe_customer_id,
		   updated_at = EXCLUDED.updated_at`,
		m.ID,
		m.StripeCustomerID,
		m.CreatedAt,
		m.UpdatedAt,
	).Error
}

func (r *repo) UpdateProviderID(ctx context.Context, db *gorm.DB, userID uuid.UUID, providerCustomerID string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE customers SET stripe_customer_id = ?, updated_at = now() WHERE id = ?`,
		providerCustomerID,
		userID,
	).Error
}
