package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Service interface {
	// HandleStatusChange reconciles the local mirror with the provider's
	// view of one subscription. The webhook payload is only a trigger; the
	// full object is re-fetched from the provider. isCreation marks
	// deliveries that should also copy billing details onto the user
	// profile.
	HandleStatusChange(ctx context.Context, subscriptionID, providerCustomerID string, isCreation bool) error

	GetUserPlan(ctx context.Context, userID uuid.UUID) (*UserPlan, error)
}

var (
	ErrInvalidSubscription = errors.New("invalid_subscription")
	ErrUserNotFound        = errors.New("user_not_found")
)
