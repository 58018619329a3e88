package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service resolves internal users to provider customer ids, creating and
// repairing the local mapping as needed. The provider's view wins over a
// stale local mapping.
type Service interface {
	// CreateOrRetrieveCustomer guarantees a valid mapping exists on success
	// and returns the provider customer id.
	CreateOrRetrieveCustomer(ctx context.Context, userID uuid.UUID, email string) (string, error)
	// ResolveUserID maps a provider customer id back to the internal user.
	ResolveUserID(ctx context.Context, providerCustomerID string) (uuid.UUID, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	// ErrUnmappedCustomer indicates a provider customer with no local
	// mapping row, a data-integrity gap upstream.
	ErrUnmappedCustomer = errors.New("unmapped_customer")
)
