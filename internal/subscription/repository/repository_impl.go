package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/subsynclabs/subsync/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const columns = `id, user_id, status, metadata, price_id, quantity, cancel_at_period_end,
	 created, current_period_start, current_period_end, ended_at, cancel_at,
	 canceled_at, trial_start, trial_end`

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Subscription, error) {
	var s domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+columns+` FROM subscriptions WHERE id = ?`,
		id,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == "" {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) FindLatestByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*domain.Subscription, error) {
	var s domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+columns+` FROM subscriptions WHERE user_id = ? ORDER BY created DESC LIMIT 1`,
		userID,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == "" {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, s *domain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (
			id, user_id, status, metadata, price_id, quantity, cancel_at_period_end,
			created, current_period_start, current_period_end, ended_at, cancel_at,
			canceled_at, trial_start, trial_end
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   user_id = EXCLUDED.user_id,
		   status = EXCLUDED.status,
		   metadata = EXCLUDED.metadata,
		   price_id = EXCLUDED.price_id,
		   quantity = EXCLUDED.quantity,
		   cancel_at_period_end = EXCLUDED.cancel_at_period_end,
		   created = EXCLUDED.created,
		   current_period_start = EXCLUDED.current_period_start,
		   current_period_end = EXCLUDED.current_period_end,
		   ended_at = EXCLUDED.ended_at,
		   cancel_at = EXCLUDED.cancel_at,
		   canceled_at = EXCLUDED.canceled_at,
		   trial_start = EXCLUDED.trial_start,
		   trial_end = EXCLUDED.trial_end`,
		s.ID,
		s.UserID,
		s.Status,
		s.Metadata,
		s.PriceID,
		s.Quantity,
		s.CancelAtPeriodEnd,
		s.Created,
		s.CurrentPeriodStart,
		s.CurrentPeriodEnd,
		s.EndedAt,
		s.CancelAt,
		s.CanceledAt,
		s.TrialStart,
		s.TrialEnd,
	).Error
}
