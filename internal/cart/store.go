package cart

import (
	"context"
	"errors"

	"github.com/shopveda/storefront/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// Store holds the session carts. The checkout flow only reads from it; the
// cart HTTP handlers own all mutation.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}
