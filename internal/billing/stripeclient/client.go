package stripeclient

import (
	"context"
	"errors"
	"strings"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	billingdomain "github.com/subsynclabs/subsync/internal/billing/domain"
)

// metadata key carrying the internal user id on provider customers.
const userIDMetadataKey = "internal_user_id"

// Client implements billingdomain.ProviderClient against the Stripe API.
// It is a stateless network handle, constructed once per process and shared
// across requests.
type Client struct {
	api *client.API
}

func New(apiKey string) *Client {
	api := &client.API{}
	api.Init(strings.TrimSpace(apiKey), nil)
	return &Client{api: api}
}

func (c *Client) RetrieveCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{Params: stripe.Params{Context: ctx}}
	cust, err := c.api.Customers.Get(id, params)
	if err != nil {
		if isNotFound(err) {
			return nil, billingdomain.ErrCustomerNotFound
		}
		return nil, err
	}
	if cust == nil || cust.Deleted {
		return nil, billingdomain.ErrCustomerNotFound
	}
	return cust, nil
}

func (c *Client) ListCustomersByEmail(ctx context.Context, email string) ([]*stripe.Customer, error) {
	params := &stripe.CustomerListParams{
		ListParams: stripe.ListParams{Context: ctx},
		Email:      stripe.String(email),
	}
	var out []*stripe.Customer
	iter := c.api.Customers.List(params)
	for iter.Next() {
		out = append(out, iter.Customer())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, userID, email string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{
		Params: stripe.Params{
			Context:  ctx,
			Metadata: map[string]string{userIDMetadataKey: userID},
		},
		Email: stripe.String(email),
	}
	cust, err := c.api.Customers.New(params)
	if err != nil {
		return nil, err
	}
	if cust == nil || cust.ID == "" {
		return nil, billingdomain.ErrCustomerCreate
	}
	return cust, nil
}

func (c *Client) UpdateCustomerBillingDetails(ctx context.Context, id string, details billingdomain.BillingDetails) error {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(details.Name),
		Phone:  stripe.String(details.Phone),
	}
	if details.Address != nil {
		params.Address = &stripe.AddressParams{
			Line1:      optional(details.Address.Line1),
			Line2:      optional(details.Address.Line2),
			City:       optional(details.Address.City),
			State:      optional(details.Address.State),
			PostalCode: optional(details.Address.PostalCode),
			Country:    optional(details.Address.Country),
		}
	}
	_, err := c.api.Customers.Update(id, params)
	return err
}

func (c *Client) RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{Params: stripe.Params{Context: ctx}}
	params.AddExpand("default_payment_method")
	return c.api.Subscriptions.Get(id, params)
}

func isNotFound(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode == 404 || stripeErr.Code == stripe.ErrorCodeResourceMissing
	}
	return false
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return stripe.String(value)
}
