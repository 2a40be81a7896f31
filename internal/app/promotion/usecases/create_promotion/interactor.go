package create_promotion

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
)

// Request contains the data needed to create a promotion.
type Request struct {
	Draft domain.Draft
	// Status defaults to aktif.
	Status domain.PromotionStatus
}

// Interactor handles the create promotion use case.
type Interactor struct {
	repo       contracts.PromotionRepository
	outboxRepo contracts.OutboxRepository
	catalog    contracts.ProductCatalog
	engine     *services.PromoEngine
	committer  committer.Applier
	clock      clock.Clock
	metrics    *metrics.Metrics
}

// NewInteractor creates a new create promotion interactor.
func NewInteractor(
	repo contracts.PromotionRepository,
	outboxRepo contracts.OutboxRepository,
	catalog contracts.ProductCatalog,
	engine *services.PromoEngine,
	committer committer.Applier,
	clock clock.Clock,
	metrics *metrics.Metrics,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		catalog:    catalog,
		engine:     engine,
		committer:  committer,
		clock:      clock,
		metrics:    metrics,
	}
}

// Execute validates the draft and stores it following the Golden Mutation Pattern.
// Rule violations are returned as *domain.ValidationFailedError.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Promotion, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}

	// 1. Build the aggregate
	now := i.clock.Now()
	promo := domain.NewPromotion(uuid.New().String(), "", nil)
	promo.ApplyDraft(req.Draft)
	if req.Status != "" {
		promo.Status = req.Status
	}
	promo.Version = 1
	promo.CreatedAt = now
	promo.UpdatedAt = now

	// 2. Validate against the catalog
	if err := i.validate(ctx, promo); err != nil {
		return nil, err
	}

	// 3. Create commit plan with the promotion mutations
	plan := committer.NewPlan()
	muts, err := i.repo.InsertMuts(promo)
	if err != nil {
		return nil, fmt.Errorf("failed to build promotion mutations: %w", err)
	}
	plan.AddMultiple(muts)

	// 4. Add outbox event
	kind, _ := promo.Kind()
	outboxEvent, err := i.outboxRepo.EnrichEvent(&domain.PromotionCreatedEvent{
		PromotionID: promo.ID,
		Nama:        promo.Nama,
		Variant:     kind,
		Status:      promo.Status,
		ProdukIDs:   promo.ProductIDs(),
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	plan.Add(i.outboxRepo.InsertMut(outboxEvent))

	// 5. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return promo, nil
}

func (i *Interactor) validate(ctx context.Context, promo *domain.Promotion) error {
	products, err := i.catalog.GetProductsByIDs(ctx, promo.ProductIDs())
	if err != nil {
		return fmt.Errorf("failed to resolve products: %w", err)
	}

	result, err := i.engine.Validate(promo, domain.ProductIndex(products), i.clock.Now())
	if err != nil {
		return err
	}

	kind, _ := promo.Kind()
	i.metrics.IncValidation(string(kind), result.Valid())
	if !result.Valid() {
		return &domain.ValidationFailedError{Errors: result.Errors}
	}
	return nil
}
