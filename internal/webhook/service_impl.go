package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v74"
	catalogdomain "github.com/subsynclabs/subsync/internal/catalog/domain"
	"github.com/subsynclabs/subsync/internal/metrics"
	subscriptiondomain "github.com/subsynclabs/subsync/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Event types this service reconciles. Anything else is acknowledged as a
// no-op so the provider does not keep redelivering irrelevant events.
const (
	eventProductCreated          = "product.created"
	eventProductUpdated          = "product.updated"
	eventProductDeleted          = "product.deleted"
	eventPriceCreated            = "price.created"
	eventPriceUpdated            = "price.updated"
	eventPriceDeleted            = "price.deleted"
	eventSubscriptionCreated     = "customer.subscription.created"
	eventSubscriptionUpdated     = "customer.subscription.updated"
	eventSubscriptionDeleted     = "customer.subscription.deleted"
	eventCheckoutSessionComplete = "checkout.session.completed"
	eventInvoicePaymentSucceeded = "invoice.payment_succeeded"
)

type Service interface {
	// Process verifies and dispatches one webhook delivery.
	Process(ctx context.Context, payload []byte, signatureHeader string) error
}

type Params struct {
	fx.In

	Log             *zap.Logger
	Verifier        *Verifier
	CatalogSvc      catalogdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	Metrics         *metrics.WebhookMetrics `optional:"true"`
}

type service struct {
	log             *zap.Logger
	verifier        *Verifier
	catalogSvc      catalogdomain.Service
	subscriptionSvc subscriptiondomain.Service
	metrics         *metrics.WebhookMetrics
}

func NewService(p Params) Service {
	return &service{
		log:             p.Log.Named("webhook"),
		verifier:        p.Verifier,
		catalogSvc:      p.CatalogSvc,
		subscriptionSvc: p.SubscriptionSvc,
		metrics:         p.Metrics,
	}
}

func (s *service) Process(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.verifier.Verify(payload, signatureHeader)
	if err != nil {
		s.metrics.Observe("unknown", metrics.OutcomeRejected)
		return err
	}

	if err := s.dispatch(ctx, event); err != nil {
		s.metrics.Observe(string(event.Type), metrics.OutcomeFailed)
		s.log.Error("webhook handling failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *service) dispatch(ctx context.Context, event stripe.Event) error {
	eventType := string(event.Type)

	switch eventType {
	case eventProductCreated, eventProductUpdated:
		var product stripe.Product
		if err := unmarshalObject(event, &product); err != nil {
			return err
		}
		return s.observe(eventType, s.catalogSvc.UpsertProduct(ctx, &product))

	case eventProductDeleted:
		var product stripe.Product
		if err := unmarshalObject(event, &product); err != nil {
			return err
		}
		return s.observe(eventType, s.catalogSvc.DeleteProduct(ctx, product.ID))

	case eventPriceCreated, eventPriceUpdated:
		var price stripe.Price
		if err := unmarshalObject(event, &price); err != nil {
			return err
		}
		return s.observe(eventType, s.catalogSvc.UpsertPrice(ctx, &price))

	case eventPriceDeleted:
		var price stripe.Price
		if err := unmarshalObject(event, &price); err != nil {
			return err
		}
		return s.observe(eventType, s.catalogSvc.DeletePrice(ctx, price.ID))

	case eventSubscriptionCreated, eventSubscriptionUpdated, eventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := unmarshalObject(event, &sub); err != nil {
			return err
		}
		if sub.Customer == nil {
			return subscriptiondomain.ErrInvalidSubscription
		}
		isCreation := eventType == eventSubscriptionCreated
		return s.observe(eventType,
			s.subscriptionSvc.HandleStatusChange(ctx, sub.ID, sub.Customer.ID, isCreation))

	case eventCheckoutSessionComplete:
		var session stripe.CheckoutSession
		if err := unmarshalObject(event, &session); err != nil {
			return err
		}
		if session.Mode != stripe.CheckoutSessionModeSubscription {
			s.metrics.Observe(eventType, metrics.OutcomeIgnored)
			return nil
		}
		if session.Subscription == nil || session.Customer == nil {
			return subscriptiondomain.ErrInvalidSubscription
		}
		return s.observe(eventType,
			s.subscriptionSvc.HandleStatusChange(ctx, session.Subscription.ID, session.Customer.ID, true))

	case eventInvoicePaymentSucceeded:
		// Received for completeness; settlement is not mirrored locally.
		s.metrics.Observe(eventType, metrics.OutcomeIgnored)
		return nil

	default:
		s.log.Debug("ignoring webhook event", zap.String("event_type", eventType))
		s.metrics.Observe(eventType, metrics.OutcomeIgnored)
		return nil
	}
}

func (s *service) observe(eventType string, err error) error {
	if err == nil {
		s.metrics.Observe(eventType, metrics.OutcomeProcessed)
	}
	return err
}

func unmarshalObject(event stripe.Event, target any) error {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return ErrUnhandledEvent
	}
	if err := json.Unmarshal(event.Data.Raw, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.Type, err)
	}
	return nil
}

// IsAuthError reports whether err should surface as an authentication
// failure rather than a processing failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrSignatureMissing) || errors.Is(err, ErrSignatureInvalid)
}
