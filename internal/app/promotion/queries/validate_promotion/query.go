package validate_promotion

import (
	"context"
	"fmt"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
)

// Request contains a draft to check without storing it.
type Request struct {
	Draft  domain.Draft
	Status domain.PromotionStatus // defaults to aktif
}

// Query runs the validator on a draft against the live catalog.
type Query struct {
	catalog contracts.ProductCatalog
	engine  *services.PromoEngine
	clock   clock.Clock
	metrics *metrics.Metrics
}

// NewQuery creates a new validate promotion query.
func NewQuery(catalog contracts.ProductCatalog, engine *services.PromoEngine, clock clock.Clock, metrics *metrics.Metrics) *Query {
	return &Query{
		catalog: catalog,
		engine:  engine,
		clock:   clock,
		metrics: metrics,
	}
}

// Execute returns every violation. Violations are data; only a missing
// variant or a catalog failure is an error.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.ValidationResult, error) {
	if req == nil {
		req = &Request{}
	}

	promo := domain.NewPromotion("", "", nil)
	promo.ApplyDraft(req.Draft)
	if req.Status != "" {
		promo.Status = req.Status
	}

	kind, err := promo.Kind()
	if err != nil {
		return nil, err
	}

	products, err := q.catalog.GetProductsByIDs(ctx, promo.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	result, err := q.engine.Validate(promo, domain.ProductIndex(products), q.clock.Now())
	if err != nil {
		return nil, err
	}

	q.metrics.IncValidation(string(kind), result.Valid())
	return result, nil
}
