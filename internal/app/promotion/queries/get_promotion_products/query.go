package get_promotion_products

import (
	"context"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
)

// Request contains the promotion whose products are listed.
type Request struct {
	PromotionID string
}

// Query lists the catalog products a promotion references.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get promotion products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute returns the products in link order.
func (q *Query) Execute(ctx context.Context, req *Request) ([]domain.Product, error) {
	if req == nil || req.PromotionID == "" {
		return nil, domain.ErrEmptyPromotionID
	}
	return q.readModel.GetProductsForPromo(ctx, req.PromotionID)
}
