package domain

import (
	"context"
	"errors"

	stripe "github.com/stripe/stripe-go/v74"
)

// ProviderClient is the outbound surface of the billing provider. The
// provider is the single source of truth; the local mirror only reflects
// what these calls return.
type ProviderClient interface {
	RetrieveCustomer(ctx context.Context, id string) (*stripe.Customer, error)
	ListCustomersByEmail(ctx context.Context, email string) ([]*stripe.Customer, error)
	// CreateCustomer creates a provider customer tagged with the internal
	// user id in its metadata for reverse lookup.
	CreateCustomer(ctx context.Context, userID, email string) (*stripe.Customer, error)
	UpdateCustomerBillingDetails(ctx context.Context, id string, details BillingDetails) error
	// RetrieveSubscription fetches the full subscription with the default
	// payment method expanded.
	RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
}

// BillingDetails is the address/contact summary pushed back onto the
// provider customer during the one-time enrichment on subscription creation.
type BillingDetails struct {
	Name    string
	Phone   string
	Address *stripe.Address
}

var (
	ErrCustomerNotFound = errors.New("billing_customer_not_found")
	ErrCustomerCreate   = errors.New("billing_customer_create_failed")
)
