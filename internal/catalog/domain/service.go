package domain

import (
	"context"
	"errors"

	stripe "github.com/stripe/stripe-go/v74"
)

// Service keeps the local product/price mirror consistent with the
// provider's catalog events.
type Service interface {
	UpsertProduct(ctx context.Context, product *stripe.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	UpsertPrice(ctx context.Context, price *stripe.Price) error
	DeletePrice(ctx context.Context, priceID string) error
}

var (
	ErrInvalidProduct = errors.New("invalid_product")
	ErrInvalidPrice   = errors.New("invalid_price")
	// ErrProductMissing marks a price upsert whose parent product has not
	// arrived yet. Permanent for this delivery; retrying locally cannot fix
	// the ordering problem upstream.
	ErrProductMissing = errors.New("price_product_missing")
)
