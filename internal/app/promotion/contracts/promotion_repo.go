package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/pkg/committer"
)

// PromotionRepository defines promotion persistence.
// Write methods return mutations; use cases apply them through a commit plan.
type PromotionRepository interface {
	// InsertMuts creates the promotion row and its product links.
	InsertMuts(promo *domain.Promotion) ([]*spanner.Mutation, error)

	// UpdateMuts replaces every stored field and the product links.
	// promo.Version must already hold the new version.
	UpdateMuts(promo *domain.Promotion) ([]*spanner.Mutation, error)

	// StatusMut stores only the status flag and version.
	StatusMut(promo *domain.Promotion) *spanner.Mutation

	// DeleteMut removes the promotion and its links.
	DeleteMut(promotionID string) *spanner.Mutation

	// VersionCheck guards a write on the version the caller read.
	VersionCheck(promotionID string, expected int64) committer.VersionCheck

	// GetByID loads a promotion with its variant.
	// Returns domain.ErrPromotionNotFound when it does not exist.
	GetByID(ctx context.Context, promotionID string) (*domain.Promotion, error)
}
