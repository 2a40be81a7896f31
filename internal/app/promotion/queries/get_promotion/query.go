package get_promotion

import (
	"context"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
)

// Request contains the promotion ID to retrieve.
type Request struct {
	PromotionID string
}

// Response is a promotion with its lifecycle status as of now.
type Response struct {
	Promotion *domain.Promotion
	Status    domain.StatusResult
}

// Query handles the get promotion query use case.
type Query struct {
	repo   contracts.PromotionRepository
	engine *services.PromoEngine
	clock  clock.Clock
}

// NewQuery creates a new get promotion query.
func NewQuery(repo contracts.PromotionRepository, engine *services.PromoEngine, clock clock.Clock) *Query {
	return &Query{
		repo:   repo,
		engine: engine,
		clock:  clock,
	}
}

// Execute retrieves a promotion by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.PromotionID == "" {
		return nil, domain.ErrEmptyPromotionID
	}

	promo, err := q.repo.GetByID(ctx, req.PromotionID)
	if err != nil {
		return nil, err
	}

	return &Response{
		Promotion: promo,
		Status:    q.engine.ResolveStatus(promo, q.clock.Now()),
	}, nil
}
