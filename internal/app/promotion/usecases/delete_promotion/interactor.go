package delete_promotion

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
)

// Request identifies the promotion to delete.
type Request struct {
	PromotionID string
	// ExpectedVersion rejects the delete when the stored version differs.
	// Zero skips the check.
	ExpectedVersion int64
}

// Interactor handles the delete promotion use case.
type Interactor struct {
	repo       contracts.PromotionRepository
	outboxRepo contracts.OutboxRepository
	committer  committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new delete promotion interactor.
func NewInteractor(
	repo contracts.PromotionRepository,
	outboxRepo contracts.OutboxRepository,
	committer committer.Applier,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
	}
}

// Execute removes a promotion and its product links.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req == nil || req.PromotionID == "" {
		return domain.ErrEmptyPromotionID
	}

	// 1. Existence check
	promo, err := i.repo.GetByID(ctx, req.PromotionID)
	if err != nil {
		return err
	}
	if req.ExpectedVersion != 0 && req.ExpectedVersion != promo.Version {
		return domain.ErrConcurrentUpdate
	}

	// 2. Create commit plan
	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(promo.ID))

	// 3. Add outbox event
	outboxEvent, err := i.outboxRepo.EnrichEvent(&domain.PromotionDeletedEvent{
		PromotionID: promo.ID,
		DeletedAt:   i.clock.Now(),
	})
	if err != nil {
		return err
	}
	plan.Add(i.outboxRepo.InsertMut(outboxEvent))

	// 4. Apply plan
	if err := i.committer.ApplyWithVersionCheck(ctx, i.repo.VersionCheck(promo.ID, promo.Version), plan); err != nil {
		switch {
		case errors.Is(err, committer.ErrOptimisticLockConflict):
			return domain.ErrConcurrentUpdate
		case errors.Is(err, committer.ErrRowNotFound):
			return domain.ErrPromotionNotFound
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
