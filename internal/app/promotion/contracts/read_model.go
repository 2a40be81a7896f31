package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
)

// ListFilter defines filtering options for listing promotions. Empty
// fields do not filter.
type ListFilter struct {
	Status  domain.PromotionStatus
	Variant domain.VariantKind
	Phase   domain.LifecyclePhase
	// Today is the calendar day Phase is evaluated against.
	Today     time.Time
	PageSize  int
	PageToken string
}

// ListResult contains one page of promotions.
type ListResult struct {
	Promotions    []*domain.Promotion
	NextPageToken string
	TotalCount    int64
}

// ReadModel defines promotion queries that bypass the write repository.
type ReadModel interface {
	// ListPromotions returns a page of promotions, newest first.
	ListPromotions(ctx context.Context, filter *ListFilter) (*ListResult, error)

	// GetProductsForPromo returns the catalog products a promotion references,
	// in link order. Returns domain.ErrPromotionNotFound for unknown IDs.
	GetProductsForPromo(ctx context.Context, promotionID string) ([]domain.Product, error)
}
