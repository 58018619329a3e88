package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/subsynclabs/subsync/internal/user/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, full_name, avatar_url, billing_address, payment_method, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == uuid.Nil {
		return nil, nil
	}
	return &u, nil
}

func (r *repo) UpdateBillingDetails(ctx context.Context, db *gorm.DB, id uuid.UUID, billingAddress, paymentMethod datatypes.JSONMap) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users SET billing_address = ?, payment_method = ?, updated_at = now() WHERE id = ?`,
		billingAddress,
		paymentMethod,
		id,
	).Error
}
