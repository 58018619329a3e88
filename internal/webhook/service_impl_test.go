package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v74"
	subscriptiondomain "github.com/subsynclabs/subsync/internal/subscription/domain"
	"go.uber.org/zap"
)

type fakeCatalog struct {
	products        []*stripe.Product
	deletedProducts []string
	prices          []*stripe.Price
	deletedPrices   []string
	err             error
}

func (f *fakeCatalog) UpsertProduct(ctx context.Context, product *stripe.Product) error {
	if f.err != nil {
		return f.err
	}
	f.products = append(f.products, product)
	return nil
}

func (f *fakeCatalog) DeleteProduct(ctx context.Context, productID string) error {
	f.deletedProducts = append(f.deletedProducts, productID)
	return f.err
}

func (f *fakeCatalog) UpsertPrice(ctx context.Context, price *stripe.Price) error {
	if f.err != nil {
		return f.err
	}
	f.prices = append(f.prices, price)
	return nil
}

func (f *fakeCatalog) DeletePrice(ctx context.Context, priceID string) error {
	f.deletedPrices = append(f.deletedPrices, priceID)
	return f.err
}

type statusChange struct {
	subscriptionID string
	customerID     string
	isCreation     bool
}

type fakeSubscriptions struct {
	calls []statusChange
	err   error
}

func (f *fakeSubscriptions) HandleStatusChange(ctx context.Context, subscriptionID, providerCustomerID string, isCreation bool) error {
	f.calls = append(f.calls, statusChange{subscriptionID, providerCustomerID, isCreation})
	return f.err
}

func (f *fakeSubscriptions) GetUserPlan(ctx context.Context, userID uuid.UUID) (*subscriptiondomain.UserPlan, error) {
	return nil, nil
}

func newTestService(catalog *fakeCatalog, subs *fakeSubscriptions) Service {
	return NewService(Params{
		Log:             zap.NewNop(),
		Verifier:        NewVerifier(testSecret),
		CatalogSvc:      catalog,
		SubscriptionSvc: subs,
	})
}

func deliver(t *testing.T, svc Service, eventType string, object any) error {
	t.Helper()
	raw, err := json.Marshal(object)
	require.NoError(t, err)
	payload, err := json.Marshal(map[string]any{
		"id":          "evt_1",
		"api_version": stripe.APIVersion,
		"type":        eventType,
		"data":        map[string]any{"object": json.RawMessage(raw)},
	})
	require.NoError(t, err)
	return svc.Process(context.Background(), payload, signPayload(t, testSecret, payload))
}

func TestProcess_ProductEvents(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newTestService(catalog, &fakeSubscriptions{})

	require.NoError(t, deliver(t, svc, "product.created", map[string]any{"id": "prod_1", "name": "Pro Plan"}))
	require.NoError(t, deliver(t, svc, "product.updated", map[string]any{"id": "prod_1", "name": "Pro Plan v2"}))
	require.NoError(t, deliver(t, svc, "product.deleted", map[string]any{"id": "prod_1"}))

	require.Len(t, catalog.products, 2)
	assert.Equal(t, "Pro Plan v2", catalog.products[1].Name)
	assert.Equal(t, []string{"prod_1"}, catalog.deletedProducts)
}

func TestProcess_PriceEvents(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newTestService(catalog, &fakeSubscriptions{})

	require.NoError(t, deliver(t, svc, "price.created", map[string]any{"id": "price_1", "product": "prod_1"}))
	require.NoError(t, deliver(t, svc, "price.deleted", map[string]any{"id": "price_1"}))

	require.Len(t, catalog.prices, 1)
	assert.Equal(t, "price_1", catalog.prices[0].ID)
	require.NotNil(t, catalog.prices[0].Product)
	assert.Equal(t, "prod_1", catalog.prices[0].Product.ID)
	assert.Equal(t, []string{"price_1"}, catalog.deletedPrices)
}

func TestProcess_SubscriptionEvents(t *testing.T) {
	subs := &fakeSubscriptions{}
	svc := newTestService(&fakeCatalog{}, subs)

	object := map[string]any{"id": "sub_1", "customer": "cus_1", "status": "active"}
	require.NoError(t, deliver(t, svc, "customer.subscription.created", object))
	require.NoError(t, deliver(t, svc, "customer.subscription.updated", object))
	require.NoError(t, deliver(t, svc, "customer.subscription.deleted", object))

	require.Len(t, subs.calls, 3)
	assert.Equal(t, statusChange{"sub_1", "cus_1", true}, subs.calls[0])
	assert.Equal(t, statusChange{"sub_1", "cus_1", false}, subs.calls[1])
	assert.Equal(t, statusChange{"sub_1", "cus_1", false}, subs.calls[2])
}

func TestProcess_CheckoutSessionCompleted(t *testing.T) {
	subs := &fakeSubscriptions{}
	svc := newTestService(&fakeCatalog{}, subs)

	err := deliver(t, svc, "checkout.session.completed", map[string]any{
		"id":           "cs_1",
		"mode":         "subscription",
		"subscription": "sub_1",
		"customer":     "cus_1",
	})
	require.NoError(t, err)
	require.Len(t, subs.calls, 1)
	assert.Equal(t, statusChange{"sub_1", "cus_1", true}, subs.calls[0])
}

func TestProcess_CheckoutSessionPaymentModeIgnored(t *testing.T) {
	subs := &fakeSubscriptions{}
	svc := newTestService(&fakeCatalog{}, subs)

	err := deliver(t, svc, "checkout.session.completed", map[string]any{
		"id":   "cs_1",
		"mode": "payment",
	})
	require.NoError(t, err)
	assert.Empty(t, subs.calls)
}

func TestProcess_IrrelevantEventsAcknowledged(t *testing.T) {
	catalog := &fakeCatalog{}
	subs := &fakeSubscriptions{}
	svc := newTestService(catalog, subs)

	require.NoError(t, deliver(t, svc, "invoice.payment_succeeded", map[string]any{"id": "in_1"}))
	require.NoError(t, deliver(t, svc, "charge.succeeded", map[string]any{"id": "ch_1"}))
	require.NoError(t, deliver(t, svc, "payment_intent.created", map[string]any{"id": "pi_1"}))

	assert.Empty(t, catalog.products)
	assert.Empty(t, subs.calls)
}

func TestProcess_SubscriptionWithoutCustomerRejected(t *testing.T) {
	subs := &fakeSubscriptions{}
	svc := newTestService(&fakeCatalog{}, subs)

	err := deliver(t, svc, "customer.subscription.updated", map[string]any{"id": "sub_1"})
	require.ErrorIs(t, err, subscriptiondomain.ErrInvalidSubscription)
	assert.Empty(t, subs.calls)
}

func TestProcess_HandlerFailurePropagates(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("database unavailable")}
	svc := newTestService(catalog, &fakeSubscriptions{})

	err := deliver(t, svc, "product.created", map[string]any{"id": "prod_1"})
	require.Error(t, err)
	assert.False(t, IsAuthError(err))
}

func TestProcess_InvalidSignatureBlocksDispatch(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newTestService(catalog, &fakeSubscriptions{})

	payload := []byte(`{"id":"evt_1","type":"product.created","data":{"object":{"id":"prod_1"}}}`)
	err := svc.Process(context.Background(), payload, signPayload(t, "whsec_other", payload))
	require.True(t, IsAuthError(err))
	assert.Empty(t, catalog.products)
}
