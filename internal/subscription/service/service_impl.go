package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v74"
	billingdomain "github.com/subsynclabs/subsync/internal/billing/domain"
	customerdomain "github.com/subsynclabs/subsync/internal/customer/domain"
	"github.com/subsynclabs/subsync/internal/metrics"
	"github.com/subsynclabs/subsync/internal/subscription/domain"
	userdomain "github.com/subsynclabs/subsync/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Billing     billingdomain.ProviderClient
	Repo        domain.Repository
	CustomerSvc customerdomain.Service
	UserRepo    userdomain.Repository
	Metrics     *metrics.WebhookMetrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	billing     billingdomain.ProviderClient
	repo        domain.Repository
	customerSvc customerdomain.Service
	userRepo    userdomain.Repository
	metrics     *metrics.WebhookMetrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("subscription.service"),
		billing:     p.Billing,
		repo:        p.Repo,
		customerSvc: p.CustomerSvc,
		userRepo:    p.UserRepo,
		metrics:     p.Metrics,
	}
}

func (s *Service) HandleStatusChange(ctx context.Context, subscriptionID, providerCustomerID string, isCreation bool) error {
	if strings.TrimSpace(subscriptionID) == "" {
		return domain.ErrInvalidSubscription
	}

	userID, err := s.customerSvc.ResolveUserID(ctx, providerCustomerID)
	if err != nil {
		return err
	}

	// The webhook payload may be stale or partial depending on event type;
	// the provider's current view is authoritative.
	sub, err := s.billing.RetrieveSubscription(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("subscription fetch failed: %w", err)
	}

	incomingPeriodEnd := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	stored, err := s.repo.FindByID(ctx, s.db, subscriptionID)
	if err != nil {
		return fmt.Errorf("subscription lookup failed: %w", err)
	}
	if stored != nil && !stored.CurrentPeriodEnd.Before(incomingPeriodEnd) {
		// A concurrent or redelivered webhook already applied a newer or
		// equal version. Arrival order does not matter, the period clock
		// does.
		s.log.Info("skipping stale subscription update",
			zap.String("subscription_id", subscriptionID),
			zap.Time("stored_period_end", stored.CurrentPeriodEnd),
			zap.Time("incoming_period_end", incomingPeriodEnd))
		s.metrics.Observe("customer.subscription", metrics.OutcomeStale)
		return nil
	}

	item := firstItem(sub)
	if item == nil {
		return domain.ErrInvalidSubscription
	}
	if len(sub.Items.Data) > 1 {
		s.log.Warn("subscription has multiple items, storing only the first",
			zap.String("subscription_id", subscriptionID),
			zap.Int("item_count", len(sub.Items.Data)))
	}

	row := &domain.Subscription{
		ID:                 sub.ID,
		UserID:             userID,
		Status:             domain.SubscriptionStatus(sub.Status),
		Metadata:           toJSONMap(sub.Metadata),
		Quantity:           optionalInt64(item.Quantity),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		Created:            time.Unix(sub.Created, 0).UTC(),
		CurrentPeriodStart: time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   incomingPeriodEnd,
		EndedAt:            optionalTime(sub.EndedAt),
		CancelAt:           optionalTime(sub.CancelAt),
		CanceledAt:         optionalTime(sub.CanceledAt),
		TrialStart:         optionalTime(sub.TrialStart),
		TrialEnd:           optionalTime(sub.TrialEnd),
	}
	if item.Price != nil {
		priceID := item.Price.ID
		row.PriceID = &priceID
	}

	if err := s.repo.Upsert(ctx, s.db, row); err != nil {
		return fmt.Errorf("subscription upsert failed: %w", err)
	}
	s.log.Info("subscription mirrored",
		zap.String("subscription_id", sub.ID),
		zap.String("user_id", userID.String()),
		zap.String("status", string(sub.Status)))

	// One-time enrichment on creation, and only when the provider returned
	// the expanded payment method object rather than a bare id.
	if isCreation && sub.DefaultPaymentMethod != nil && sub.DefaultPaymentMethod.ID != "" {
		if err := s.copyBillingDetails(ctx, userID, sub.DefaultPaymentMethod); err != nil {
			return err
		}
	}

	return nil
}

// copyBillingDetails pushes the payment method's contact details back onto
// the provider customer and stores the address plus a payment-method summary
// on the local user profile.
func (s *Service) copyBillingDetails(ctx context.Context, userID uuid.UUID, pm *stripe.PaymentMethod) error {
	if pm.Customer == nil || pm.Customer.ID == "" {
		s.log.Error("payment method has no customer attached", zap.String("payment_method_id", pm.ID))
		return nil
	}
	details := pm.BillingDetails
	if details == nil || details.Name == "" || details.Phone == "" || details.Address == nil {
		return nil
	}

	err := s.billing.UpdateCustomerBillingDetails(ctx, pm.Customer.ID, billingdomain.BillingDetails{
		Name:    details.Name,
		Phone:   details.Phone,
		Address: details.Address,
	})
	if err != nil {
		return fmt.Errorf("provider customer update failed: %w", err)
	}

	billingAddress := datatypes.JSONMap{
		"line1":       details.Address.Line1,
		"line2":       details.Address.Line2,
		"city":        details.Address.City,
		"state":       details.Address.State,
		"postal_code": details.Address.PostalCode,
		"country":     details.Address.Country,
	}
	if err := s.userRepo.UpdateBillingDetails(ctx, s.db, userID, billingAddress, paymentMethodSummary(pm)); err != nil {
		return fmt.Errorf("user billing details update failed: %w", err)
	}
	return nil
}

func (s *Service) GetUserPlan(ctx context.Context, userID uuid.UUID) (*domain.UserPlan, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	plan := &domain.UserPlan{}

	sub, err := s.repo.FindLatestByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		plan.SubscriptionID = sub.ID
		plan.Status = string(sub.Status)
		periodEnd := sub.CurrentPeriodEnd
		plan.CurrentPeriodEnd = &periodEnd
		if sub.PriceID != nil {
			plan.PriceID = *sub.PriceID
		}
		plan.IsPro = sub.Status == domain.SubscriptionStatusActive ||
			sub.Status == domain.SubscriptionStatusTrialing
	}

	providerID, err := s.customerProviderID(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan.StripeCustomerID = providerID

	return plan, nil
}

func (s *Service) customerProviderID(ctx context.Context, userID uuid.UUID) (string, error) {
	var providerID string
	err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(stripe_customer_id, '') FROM customers WHERE id = ?`,
		userID.String(),
	).Scan(&providerID).Error
	if err != nil {
		return "", err
	}
	return providerID, nil
}

func firstItem(sub *stripe.Subscription) *stripe.SubscriptionItem {
	if sub == nil || sub.Items == nil || len(sub.Items.Data) == 0 {
		return nil
	}
	return sub.Items.Data[0]
}

func paymentMethodSummary(pm *stripe.PaymentMethod) datatypes.JSONMap {
	summary := datatypes.JSONMap{"type": string(pm.Type)}
	if pm.Card != nil {
		summary["brand"] = string(pm.Card.Brand)
		summary["last4"] = pm.Card.Last4
		summary["exp_month"] = pm.Card.ExpMonth
		summary["exp_year"] = pm.Card.ExpYear
	}
	return summary
}

func optionalInt64(value int64) *int64 {
	if value == 0 {
		return nil
	}
	return &value
}

func optionalTime(unix int64) *time.Time {
	if unix == 0 {
		return nil
	}
	t := time.Unix(unix, 0).UTC()
	return &t
}

func toJSONMap(metadata map[string]string) datatypes.JSONMap {
	if len(metadata) == 0 {
		return datatypes.JSONMap{}
	}
	out := make(datatypes.JSONMap, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
