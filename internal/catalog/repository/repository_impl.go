package repository

import (
	"context"

	"github.com/subsynclabs/subsync/internal/catalog/domain"
	"gorm.io/gorm"
)

type productRepo struct{}

func ProvideProductRepository() domain.ProductRepository {
	return &productRepo{}
}

func (r *productRepo) Upsert(ctx context.Context, db *gorm.DB, p *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, active, name, description, image, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   active = EXCLUDED.active,
		   name = EXCLUDED.name,
		   description = EXCLUDED.description,
		   image = EXCLUDED.image,
		   metadata = EXCLUDED.metadata,
		   updated_at = EXCLUDED.updated_at`,
		p.ID,
		p.Active,
		p.Name,
		p.Description,
		p.Image,
		p.Metadata,
		p.CreatedAt,
		p.UpdatedAt,
	).Error
}

func (r *productRepo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, active, name, description, image, metadata, created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id).Error
}

type priceRepo struct{}

func ProvidePriceRepository() domain.PriceRepository {
	return &priceRepo{}
}

func (r *priceRepo) Upsert(ctx context.Context, db *gorm.DB, p *domain.Price) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO prices (
			id, product_id, active, description, unit_amount, currency,
			billing_type, billing_interval, interval_count, trial_period_days,
			metadata, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   product_id = EXCLUDED.product_id,
		   active = EXCLUDED.active,
		   description = EXCLUDED.description,
		   unit_amount = EXCLUDED.unit_amount,
		   currency = EXCLUDED.currency,
		   billing_type = EXCLUDED.billing_type,
		   billing_interval = EXCLUDED.billing_interval,
		   interval_count = EXCLUDED.interval_count,
		   trial_period_days = EXCLUDED.trial_period_days,
		   metadata = EXCLUDED.metadata,
		   updated_at = EXCLUDED.updated_at`,
		p.ID,
		p.ProductID,
		p.Active,
		p.Description,
		p.UnitAmount,
		p.Currency,
		p.BillingType,
		p.BillingInterval,
		p.IntervalCount,
		p.TrialPeriodDays,
		p.Metadata,
		p.CreatedAt,
		p.UpdatedAt,
	).Error
}

func (r *priceRepo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Price, error) {
	var p domain.Price
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, active, description, unit_amount, currency,
		 billing_type, billing_interval, interval_count, trial_period_days,
		 metadata, created_at, updated_at
		 FROM prices WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, nil
	}
	return &p, nil
}

func (r *priceRepo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Exec(`DELETE FROM prices WHERE id = ?`, id).Error
}
