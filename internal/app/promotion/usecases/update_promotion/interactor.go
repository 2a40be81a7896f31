package update_promotion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
)

// Request contains the replacement configuration of a promotion.
type Request struct {
	PromotionID string
	Draft       domain.Draft
	// ExpectedVersion rejects the update when the stored version differs.
	// Zero skips the check against the caller's copy.
	ExpectedVersion int64
}

// Interactor handles the update promotion use case.
type Interactor struct {
	repo       contracts.PromotionRepository
	outboxRepo contracts.OutboxRepository
	catalog    contracts.ProductCatalog
	engine     *services.PromoEngine
	committer  committer.Applier
	clock      clock.Clock
	metrics    *metrics.Metrics
}

// NewInteractor creates a new update promotion interactor.
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

// Execute replaces every editable field of a promotion. The variant may change.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Promotion, error) {
	if req == nil || req.PromotionID == "" {
		return nil, domain.ErrEmptyPromotionID
	}

	// 1. Load aggregate
	promo, err := i.repo.GetByID(ctx, req.PromotionID)
	if err != nil {
		return nil, err
	}
	readVersion := promo.Version
	if req.ExpectedVersion != 0 && req.ExpectedVersion != readVersion {
		return nil, domain.ErrConcurrentUpdate
	}

	// 2. Replace the configuration and validate
	now := i.clock.Now()
	promo.ApplyDraft(req.Draft)
	if err := i.validate(ctx, promo, now); err != nil {
		return nil, err
	}
	promo.Version = readVersion + 1
	promo.UpdatedAt = now

	// 3. Create commit plan
	plan := committer.NewPlan()
	muts, err := i.repo.UpdateMuts(promo)
	if err != nil {
		return nil, fmt.Errorf("failed to build promotion mutations: %w", err)
	}
	plan.AddMultiple(muts)

	// 4. Add outbox event
	kind, _ := promo.Kind()
	outboxEvent, err := i.outboxRepo.EnrichEvent(&domain.PromotionUpdatedEvent{
		PromotionID: promo.ID,
		Nama:        promo.Nama,
		Variant:     kind,
		ProdukIDs:   promo.ProductIDs(),
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	plan.Add(i.outboxRepo.InsertMut(outboxEvent))

	// 5. Apply plan if nobody wrote since the load
	err = i.committer.ApplyWithVersionCheck(ctx, i.repo.VersionCheck(promo.ID, readVersion), plan)
	if err != nil {
		return nil, commitError(err)
	}

	return promo, nil
}

func (i *Interactor) validate(ctx context.Context, promo *domain.Promotion, now time.Time) error {
	products, err := i.catalog.GetProductsByIDs(ctx, promo.ProductIDs())
	if err != nil {
		return fmt.Errorf("failed to resolve products: %w", err)
	}

	result, err := i.engine.Validate(promo, domain.ProductIndex(products), now)
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

func commitError(err error) error {
	switch {
	case errors.Is(err, committer.ErrOptimisticLockConflict):
		return domain.ErrConcurrentUpdate
	case errors.Is(err, committer.ErrRowNotFound):
		return domain.ErrPromotionNotFound
	}
	return fmt.Errorf("failed to commit transaction: %w", err)
}
