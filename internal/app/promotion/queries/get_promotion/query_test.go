package get_promotion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/app/promotion/testutil"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
)

func TestGetPromotion(t *testing.T) {
	draft := testutil.BundleDraft()
	draft.TanggalMulai = testutil.Date(2026, 10, 22)
	repo := testutil.NewRepo(testutil.StoredPromotion("promo-1", draft))
	q := NewQuery(repo, services.NewPromoEngine(), clock.NewMockClock(testutil.Now))

	t.Run("resolves status", func(t *testing.T) {
		resp, err := q.Execute(context.Background(), &Request{PromotionID: "promo-1"})
		require.NoError(t, err)

		assert.Equal(t, "Paket Hemat", resp.Promotion.Nama)
		assert.Equal(t, domain.PhaseAkanDatang, resp.Status.Phase)
		require.NotNil(t, resp.Status.DaysUntilStart)
		assert.Equal(t, int64(3), *resp.Status.DaysUntilStart)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := q.Execute(context.Background(), &Request{PromotionID: "nope"})
		assert.ErrorIs(t, err, domain.ErrPromotionNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := q.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, domain.ErrEmptyPromotionID)
	})
}
