package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	billingdomain "github.com/subsynclabs/subsync/internal/billing/domain"
	"github.com/subsynclabs/subsync/internal/clock"
	"github.com/subsynclabs/subsync/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	Billing billingdomain.ProviderClient
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	billing billingdomain.ProviderClient
}

func NewService(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("customer.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		billing: p.Billing,
	}
}

// CreateOrRetrieveCustomer resolves the provider customer for a user and
// reconciles the local mapping. The insert/update is the last step so a
// failure never leaves a partial mapping behind.
func (s *Service) CreateOrRetrieveCustomer(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	if userID == uuid.Nil {
		return "", domain.ErrInvalidUser
	}

	existing, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return "", fmt.Errorf("customer lookup failed: %w", err)
	}

	// Resolve the provider-side customer: confirm the mapped id still
	// exists, otherwise fall back to an email search for customers created
	// out-of-band.
	var providerID string
	if existing != nil && strings.TrimSpace(existing.StripeCustomerID) != "" {
		cust, err := s.billing.RetrieveCustomer(ctx, existing.StripeCustomerID)
		if err != nil && !errors.Is(err, billingdomain.ErrCustomerNotFound) {
			return "", fmt.Errorf("provider customer lookup failed: %w", err)
		}
		if cust != nil {
			providerID = cust.ID
		}
	}
	if providerID == "" {
		matches, err := s.billing.ListCustomersByEmail(ctx, email)
		if err != nil {
			return "", fmt.Errorf("provider customer search failed: %w", err)
		}
		if len(matches) > 0 {
			providerID = matches[0].ID
		}
	}

	created := false
	if providerID == "" {
		cust, err := s.billing.CreateCustomer(ctx, userID.String(), email)
		if err != nil {
			return "", fmt.Errorf("provider customer creation failed: %w", err)
		}
		providerID = cust.ID
		created = true
	}

	if existing != nil && !created {
		if existing.StripeCustomerID != providerID {
			s.log.Warn("customer mapping mismatched provider id, repairing",
				zap.String("user_id", userID.String()),
				zap.String("stored", existing.StripeCustomerID),
				zap.String("resolved", providerID))
			if err := s.repo.UpdateProviderID(ctx, s.db, userID, providerID); err != nil {
				return "", fmt.Errorf("customer mapping update failed: %w", err)
			}
		}
		return providerID, nil
	}

	s.log.Warn("customer mapping missing, creating",
		zap.String("user_id", userID.String()),
		zap.String("provider_customer_id", providerID))

	now := s.clock.Now(ctx)
	mapping := &domain.Mapping{
		ID:               userID,
		StripeCustomerID: providerID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Upsert(ctx, s.db, mapping); err != nil {
		return "", fmt.Errorf("customer mapping creation failed: %w", err)
	}
	return providerID, nil
}

func (s *Service) ResolveUserID(ctx context.Context, providerCustomerID string) (uuid.UUID, error) {
	if strings.TrimSpace(providerCustomerID) == "" {
		return uuid.Nil, domain.ErrUnmappedCustomer
	}
	mapping, err := s.repo.FindByProviderID(ctx, s.db, providerCustomerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("customer lookup failed: %w", err)
	}
	if mapping == nil {
		return uuid.Nil, domain.ErrUnmappedCustomer
	}
	return mapping.ID, nil
}
