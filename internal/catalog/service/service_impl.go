package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	stripe "github.com/stripe/stripe-go/v74"
	"github.com/subsynclabs/subsync/internal/catalog/domain"
	"github.com/subsynclabs/subsync/internal/clock"
	"github.com/subsynclabs/subsync/internal/config"
	"github.com/subsynclabs/subsync/internal/retry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const fkViolationCode = "23503"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Cfg         config.Config
	ProductRepo domain.ProductRepository
	PriceRepo   domain.PriceRepository

	Sleep retry.SleepFunc `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	productRepo domain.ProductRepository
	priceRepo   domain.PriceRepository

	trialPeriodDays int64
	upsertRetry     retry.Policy
}

func NewService(p Params) domain.Service {
	maxAttempts := p.Cfg.SyncMaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("catalog.service"),
		clock:           p.Clock,
		productRepo:     p.ProductRepo,
		priceRepo:       p.PriceRepo,
		trialPeriodDays: p.Cfg.TrialPeriodDays,
		upsertRetry: retry.Policy{
			MaxAttempts: maxAttempts,
			BaseDelay:   p.Cfg.SyncBaseDelay,
			Retryable:   isTransient,
			Sleep:       p.Sleep,
		},
	}
}

func (s *Service) UpsertProduct(ctx context.Context, product *stripe.Product) error {
	if product == nil || strings.TrimSpace(product.ID) == "" {
		return domain.ErrInvalidProduct
	}

	now := s.clock.Now(ctx)
	row := &domain.Product{
		ID:          product.ID,
		Active:      product.Active,
		Name:        product.Name,
		Description: optionalString(product.Description),
		Metadata:    toJSONMap(product.Metadata),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(product.Images) > 0 {
		row.Image = optionalString(product.Images[0])
	}

	if err := s.productRepo.Upsert(ctx, s.db, row); err != nil {
		s.log.Error("product upsert failed", zap.String("product_id", row.ID), zap.Error(err))
		return err
	}
	s.log.Info("product mirrored", zap.String("product_id", row.ID), zap.Bool("active", row.Active))
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return domain.ErrInvalidProduct
	}
	if err := s.productRepo.Delete(ctx, s.db, productID); err != nil {
		s.log.Error("product delete failed", zap.String("product_id", productID), zap.Error(err))
		return err
	}
	s.log.Info("product removed from mirror", zap.String("product_id", productID))
	return nil
}

func (s *Service) UpsertPrice(ctx context.Context, price *stripe.Price) error {
	if price == nil || strings.TrimSpace(price.ID) == "" {
		return domain.ErrInvalidPrice
	}

	now := s.clock.Now(ctx)
	row := &domain.Price{
		ID:          price.ID,
		ProductID:   productID(price),
		Active:      price.Active,
		Currency:    string(price.Currency),
		BillingType: domain.BillingType(price.Type),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	amount := price.UnitAmount
	row.UnitAmount = &amount
	if price.Recurring != nil {
		interval := string(price.Recurring.Interval)
		count := price.Recurring.IntervalCount
		row.BillingInterval = &interval
		row.IntervalCount = &count

		trialDays := price.Recurring.TrialPeriodDays
		if trialDays == 0 {
			trialDays = s.trialPeriodDays
		}
		row.TrialPeriodDays = &trialDays
	}

	err := s.upsertRetry.Do(ctx, func(ctx context.Context) error {
		upsertErr := s.priceRepo.Upsert(ctx, s.db, row)
		if upsertErr != nil && isForeignKeyViolation(upsertErr) {
			return domain.ErrProductMissing
		}
		return upsertErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductMissing) {
			s.log.Error("price references unknown product",
				zap.String("price_id", row.ID),
				zap.String("product_id", row.ProductID))
			return err
		}
		s.log.Error("price upsert failed", zap.String("price_id", row.ID), zap.Error(err))
		return err
	}
	s.log.Info("price mirrored", zap.String("price_id", row.ID), zap.String("product_id", row.ProductID))
	return nil
}

func (s *Service) DeletePrice(ctx context.Context, priceID string) error {
	if strings.TrimSpace(priceID) == "" {
		return domain.ErrInvalidPrice
	}
	if err := s.priceRepo.Delete(ctx, s.db, priceID); err != nil {
		s.log.Error("price delete failed", zap.String("price_id", priceID), zap.Error(err))
		return err
	}
	s.log.Info("price removed from mirror", zap.String("price_id", priceID))
	return nil
}

func productID(price *stripe.Price) string {
	if price.Product == nil {
		return ""
	}
	return price.Product.ID
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == fkViolationCode
	}
	return strings.Contains(err.Error(), "foreign key constraint")
}

// isTransient treats everything except constraint violations and invalid
// input as retryable. Network and timeout failures surface as plain errors
// from the driver.
func isTransient(err error) bool {
	if errors.Is(err, domain.ErrProductMissing) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidProduct) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Constraint violations are permanent, class 23.
		return !strings.HasPrefix(pgErr.Code, "23")
	}
	return true
}

func optionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
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
