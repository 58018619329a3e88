package domain

import (
	"context"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Upsert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Product, error)
	// Delete removes the row outright. A missing row is not an error.
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type PriceRepository interface {
	Upsert(ctx context.Context, db *gorm.DB, price *Price) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Price, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}
