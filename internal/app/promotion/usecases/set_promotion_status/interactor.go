package set_promotion_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/promo-engine/internal/app/promotion/contracts"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
)

// Request contains the status a promotion should have.
type Request struct {
	PromotionID string
	Status      domain.PromotionStatus
}

// Interactor handles enabling and disabling promotions.
type Interactor struct {
	repo       contracts.PromotionRepository
	outboxRepo contracts.OutboxRepository
	committer  committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new set promotion status interactor.
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

// Execute sets the status flag. Setting the current status returns
// domain.ErrStatusUnchanged and writes nothing.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Promotion, error) {
	if req == nil || req.PromotionID == "" {
		return nil, domain.ErrEmptyPromotionID
	}
	if !req.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	// 1. Load aggregate
	promo, err := i.repo.GetByID(ctx, req.PromotionID)
	if err != nil {
		return nil, err
	}
	if promo.Status == req.Status {
		return nil, domain.ErrStatusUnchanged
	}

	// 2. Change status
	now := i.clock.Now()
	oldStatus, readVersion := promo.Status, promo.Version
	promo.Status = req.Status
	promo.Version = readVersion + 1
	promo.UpdatedAt = now

	// 3. Create commit plan
	plan := committer.NewPlan()
	plan.Add(i.repo.StatusMut(promo))

	// 4. Add outbox event
	outboxEvent, err := i.outboxRepo.EnrichEvent(&domain.PromotionStatusChangedEvent{
		PromotionID: promo.ID,
		OldStatus:   oldStatus,
		NewStatus:   promo.Status,
		ChangedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	plan.Add(i.outboxRepo.InsertMut(outboxEvent))

	// 5. Apply plan
	if err := i.committer.ApplyWithVersionCheck(ctx, i.repo.VersionCheck(promo.ID, readVersion), plan); err != nil {
		switch {
		case errors.Is(err, committer.ErrOptimisticLockConflict):
			return nil, domain.ErrConcurrentUpdate
		case errors.Is(err, committer.ErrRowNotFound):
			return nil, domain.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return promo, nil
}
