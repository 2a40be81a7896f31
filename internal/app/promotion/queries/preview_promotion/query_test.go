package preview_promotion

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/app/promotion/testutil"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
)

func newQuery(defaultSample int64) *Query {
	repo := testutil.NewRepo(testutil.StoredPromotion("promo-1", testutil.BuyXGetYDraft()))
	return NewQuery(repo, testutil.NewCatalog(), services.NewPromoEngine(), defaultSample, metrics.New(prometheus.NewRegistry()))
}

func TestPreviewPromotion_Stored(t *testing.T) {
	resp, err := newQuery(6).Execute(context.Background(), &Request{PromotionID: "promo-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(6), resp.SampleQuantity)
	assert.Equal(t, services.OutcomeValid, resp.Preview.Outcome())
	require.NotNil(t, resp.Preview.BuyXGetY)
	assert.Equal(t, int64(2), resp.Preview.BuyXGetY.FreeUnits)
	assert.True(t, resp.Preview.BuyXGetY.TotalDiscount.Equals(domain.Units(10000)))
	require.Len(t, resp.Products, 1)
}

func TestPreviewPromotion_SampleQuantity(t *testing.T) {
	t.Run("caller sample wins", func(t *testing.T) {
		resp, err := newQuery(6).Execute(context.Background(), &Request{PromotionID: "promo-1", SampleQuantity: 2})
		require.NoError(t, err)

		assert.Equal(t, int64(2), resp.SampleQuantity)
		assert.Equal(t, services.OutcomeInvalid, resp.Preview.Outcome())
	})

	t.Run("non-positive default falls back", func(t *testing.T) {
		resp, err := newQuery(0).Execute(context.Background(), &Request{PromotionID: "promo-1"})
		require.NoError(t, err)
		assert.Equal(t, int64(domain.DefaultSampleQuantity), resp.SampleQuantity)
	})
}

func TestPreviewPromotion_Draft(t *testing.T) {
	t.Run("bundle above normal total", func(t *testing.T) {
		draft := testutil.BundleDraft()
		draft.Variant = domain.Bundle{TipeBundling: domain.BundleHargaTetap, HargaBundling: 30000, ProdukIDs: []string{"p-beras", "p-gula"}}

		resp, err := newQuery(6).Execute(context.Background(), &Request{Draft: &draft})
		require.NoError(t, err)

		require.NotNil(t, resp.Preview.Bundle)
		assert.True(t, resp.Preview.Bundle.Saving.Equals(domain.Units(-5000)))
		assert.Equal(t, services.OutcomeInvalid, resp.Preview.Outcome())
	})

	t.Run("unknown product is indeterminate", func(t *testing.T) {
		draft := domain.Draft{Nama: "x", Variant: domain.BuyXGetY{TipeBuyGet: domain.BuyGetSama, ProdukX: "p-hilang", BuyQuantity: 2, GetQuantity: 1}}

		resp, err := newQuery(6).Execute(context.Background(), &Request{Draft: &draft})
		require.NoError(t, err)
		assert.True(t, resp.Preview.Indeterminate())
	})
}

func TestPreviewPromotion_Errors(t *testing.T) {
	_, err := newQuery(6).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrNothingToPreview)

	_, err = newQuery(6).Execute(context.Background(), &Request{PromotionID: "nope"})
	assert.ErrorIs(t, err, domain.ErrPromotionNotFound)

	_, err = newQuery(6).Execute(context.Background(), &Request{Draft: &domain.Draft{Nama: "x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidVariant)
}
