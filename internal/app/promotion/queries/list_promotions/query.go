package list_promotions

import (
	"context"
	"fmt"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
)

// Request contains filtering and pagination parameters. Empty filters match all.
type Request struct {
	Status    string
	Variant   string
	Phase     string
	PageSize  int
	PageToken string
}

// Item is a listed promotion with its lifecycle status.
type Item struct {
	Promotion *domain.Promotion
	Status    domain.StatusResult
}

// Response is one page of promotions.
type Response struct {
	Items         []Item
	NextPageToken string
	TotalCount    int64
}

// Query handles the list promotions query use case.
type Query struct {
	readModel contracts.ReadModel
	engine    *services.PromoEngine
	clock     clock.Clock
}

// NewQuery creates a new list promotions query.
func NewQuery(readModel contracts.ReadModel, engine *services.PromoEngine, clock clock.Clock) *Query {
	return &Query{
		readModel: readModel,
		engine:    engine,
		clock:     clock,
	}
}

// Execute retrieves a page of promotions with filtering.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		req = &Request{}
	}

	filter, err := toFilter(req)
	if err != nil {
		return nil, err
	}
	now := q.clock.Now()
	filter.Today = now

	result, err := q.readModel.ListPromotions(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(result.Promotions))
	for _, promo := range result.Promotions {
		items = append(items, Item{
			Promotion: promo,
			Status:    q.engine.ResolveStatus(promo, now),
		})
	}

	return &Response{
		Items:         items,
		NextPageToken: result.NextPageToken,
		TotalCount:    result.TotalCount,
	}, nil
}

func toFilter(req *Request) (*contracts.ListFilter, error) {
	filter := &contracts.ListFilter{
		PageSize:  req.PageSize,
		PageToken: req.PageToken,
	}

	if req.Status != "" {
		status := domain.PromotionStatus(req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, req.Status)
		}
		filter.Status = status
	}

	if req.Variant != "" {
		kind, err := domain.ParseVariantKind(req.Variant)
		if err != nil {
			return nil, err
		}
		filter.Variant = kind
	}

	if req.Phase != "" {
		phase := domain.LifecyclePhase(req.Phase)
		if !phase.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPhase, req.Phase)
		}
		filter.Phase = phase
	}

	return filter, nil
}
