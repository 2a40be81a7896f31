package contracts

import (
	"context"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
)

// ProductCatalog resolves product references. It is owned by the catalog
// service; promotions only read from it.
type ProductCatalog interface {
	// GetProductsByIDs returns the products that exist, in request order.
	// Unknown IDs are skipped, not reported as errors.
	GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}
