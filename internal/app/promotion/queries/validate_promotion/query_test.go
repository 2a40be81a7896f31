package validate_promotion

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
	"github.com/light-bringer/promo-engine/internal/app/promotion/testutil"
	"github.com/light-bringer/promo-engine/internal/pkg/clock"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
)

func newQuery() *Query {
	return NewQuery(testutil.NewCatalog(), services.NewPromoEngine(), clock.NewMockClock(testutil.Now), metrics.New(prometheus.NewRegistry()))
}

func TestValidatePromotion(t *testing.T) {
	t.Run("valid draft", func(t *testing.T) {
		result, err := newQuery().Execute(context.Background(), &Request{Draft: testutil.DiscountDraft()})
		require.NoError(t, err)
		assert.True(t, result.Valid())
	})

	t.Run("violations are returned, not raised", func(t *testing.T) {
		draft := testutil.BundleDraft()
		draft.Kode = "hemat"
		draft.Variant = domain.Bundle{TipeBundling: domain.BundleHargaTetap, HargaBundling: 20000, ProdukIDs: []string{"p-beras"}}

		result, err := newQuery().Execute(context.Background(), &Request{Draft: draft})
		require.NoError(t, err)
		require.Len(t, result.Errors, 2)
		assert.Equal(t, domain.FieldKode, result.Errors[0].Field)
		assert.Equal(t, domain.CodeTooFewItems, result.Errors[1].Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		result, err := newQuery().Execute(context.Background(), &Request{Draft: testutil.BundleDraft(), Status: "arsip"})
		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, domain.FieldStatus, result.Errors[0].Field)
	})

	t.Run("missing variant", func(t *testing.T) {
		_, err := newQuery().Execute(context.Background(), &Request{Draft: domain.Draft{Nama: "x"}})
		assert.ErrorIs(t, err, domain.ErrInvalidVariant)
	})
}
