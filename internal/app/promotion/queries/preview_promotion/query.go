package preview_promotion

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
)

// ErrNothingToPreview is returned when a request names neither a stored
// promotion nor a draft.
var ErrNothingToPreview = errors.New("either a promotion id or a draft is required")

// Request previews either a stored promotion or an unsaved draft.
type Request struct {
	PromotionID string
	Draft       *domain.Draft
	// SampleQuantity is the basket size used for buy_x_get_y. Zero uses
	// the configured default.
	SampleQuantity int64
}

// Response carries the preview and the products it was priced against.
type Response struct {
	Promotion      *domain.Promotion
	Products       []domain.Product
	SampleQuantity int64
	Preview        *services.Preview
}

// Query prices a promotion against the current catalog.
type Query struct {
	repo          contracts.PromotionRepository
	catalog       contracts.ProductCatalog
	engine        *services.PromoEngine
	defaultSample int64
	metrics       *metrics.Metrics
}

// NewQuery creates a new preview promotion query.
func NewQuery(
	repo contracts.PromotionRepository,
	catalog contracts.ProductCatalog,
	engine *services.PromoEngine,
	defaultSample int64,
	metrics *metrics.Metrics,
) *Query {
	if defaultSample <= 0 {
		defaultSample = domain.DefaultSampleQuantity
	}
	return &Query{
		repo:          repo,
		catalog:       catalog,
		engine:        engine,
		defaultSample: defaultSample,
		metrics:       metrics,
	}
}

// Execute prices the promotion. An indeterminate buy_x_get_y preview is a
// result, not an error.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNothingToPreview
	}

	promo, err := q.load(ctx, req)
	if err != nil {
		return nil, err
	}

	sample := req.SampleQuantity
	if sample <= 0 {
		sample = q.defaultSample
	}

	products, err := q.catalog.GetProductsByIDs(ctx, promo.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	preview, err := q.engine.Preview(promo, domain.ProductIndex(products), sample)
	if err != nil {
		return nil, err
	}
	q.metrics.IncPreview(string(preview.Kind), preview.Outcome())

	return &Response{
		Promotion:      promo,
		Products:       products,
		SampleQuantity: sample,
		Preview:        preview,
	}, nil
}

func (q *Query) load(ctx context.Context, req *Request) (*domain.Promotion, error) {
	if req.PromotionID != "" {
		return q.repo.GetByID(ctx, req.PromotionID)
	}
	if req.Draft == nil {
		return nil, ErrNothingToPreview
	}
	promo := domain.NewPromotion("", "", nil)
	promo.ApplyDraft(*req.Draft)
	return promo, nil
}
