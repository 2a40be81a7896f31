package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/models/m_promotion_product"
)

func roundTrip(t *testing.T, promo *domain.Promotion) *domain.Promotion {
	t.Helper()
	data, links, err := promotionToData(promo)
	require.NoError(t, err)

	got, err := dataToPromotion(data, links)
	require.NoError(t, err)
	return got
}

func TestMapping_ProductDiscount(t *testing.T) {
	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	promo := domain.NewPromotion("p1", "Diskon Beras", domain.ProductDiscount{
		Tipe: domain.DiscountPersen, Nilai: 12.5, ProdukIDs: []string{"a", "b"},
	})
	promo.Kode = "BERAS12"
	promo.TanggalMulai = &start
	promo.MinQuantity = 2
	promo.Version = 3

	got := roundTrip(t, promo)

	assert.Equal(t, promo.Variant, got.Variant)
	assert.Equal(t, "BERAS12", got.Kode)
	assert.Equal(t, "2026-11-01", domain.FormatDate(got.TanggalMulai))
	assert.Nil(t, got.TanggalSelesai)
	assert.Equal(t, int64(2), got.MinQuantity)
	assert.Equal(t, int64(3), got.Version)
	assert.Equal(t, domain.StatusAktif, got.Status)
}

func TestMapping_Bundle(t *testing.T) {
	promo := domain.NewPromotion("p2", "Paket", domain.Bundle{
		TipeBundling: domain.BundleHargaTetap, HargaBundling: 20000, ProdukIDs: []string{"a", "b", "c"},
	})

	data, links, err := promotionToData(promo)
	require.NoError(t, err)
	assert.Equal(t, "bundling", data.Variant)
	assert.False(t, data.DiscountType.Valid)
	require.Len(t, links, 3)
	assert.Equal(t, int64(2), links[2].Position)

	got, err := dataToPromotion(data, links)
	require.NoError(t, err)
	assert.Equal(t, promo.Variant, got.Variant)
}

func TestMapping_BuyXGetY(t *testing.T) {
	t.Run("beda stores both products", func(t *testing.T) {
		promo := domain.NewPromotion("p3", "Gratis Sikat", domain.BuyXGetY{
			TipeBuyGet: domain.BuyGetBeda, ProdukX: "sabun", ProdukY: "sikat", BuyQuantity: 2, GetQuantity: 1,
		})

		_, links, err := promotionToData(promo)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, m_promotion_product.RoleX, links[0].Role)
		assert.Equal(t, m_promotion_product.RoleY, links[1].Role)

		assert.Equal(t, promo.Variant, roundTrip(t, promo).Variant)
	})

	t.Run("sama drops produkY", func(t *testing.T) {
		promo := domain.NewPromotion("p4", "Beli 3 Gratis 1", domain.BuyXGetY{
			TipeBuyGet: domain.BuyGetSama, ProdukX: "sabun", ProdukY: "stale", BuyQuantity: 3, GetQuantity: 1,
		})

		got, ok := roundTrip(t, promo).BuyXGetY()
		require.True(t, ok)
		assert.Equal(t, "sabun", got.ProdukX)
		assert.Empty(t, got.ProdukY)
	})
}

func TestMapping_PointerVariantIsStoredAsValue(t *testing.T) {
	promo := domain.NewPromotion("p5", "Diskon", &domain.ProductDiscount{Tipe: domain.DiscountNominal, Nilai: 500, ProdukIDs: []string{"a"}})

	got := roundTrip(t, promo)

	assert.Equal(t, domain.ProductDiscount{Tipe: domain.DiscountNominal, Nilai: 500, ProdukIDs: []string{"a"}}, got.Variant)
}

func TestMapping_InvalidVariant(t *testing.T) {
	_, _, err := promotionToData(domain.NewPromotion("p6", "Kosong", nil))
	assert.ErrorIs(t, err, domain.ErrInvalidVariant)

	data, _, err := promotionToData(domain.NewPromotion("p7", "Diskon", domain.ProductDiscount{}))
	require.NoError(t, err)
	data.Variant = "cashback"

	_, err = dataToPromotion(data, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidVariant)
}

func TestPromotionRepo_Mutations(t *testing.T) {
	r := NewPromotionRepo(nil)
	promo := domain.NewPromotion("p8", "Paket", domain.Bundle{
		TipeBundling: domain.BundleHargaTetap, HargaBundling: 20000, ProdukIDs: []string{"a", "b"},
	})

	inserts, err := r.InsertMuts(promo)
	require.NoError(t, err)
	assert.Len(t, inserts, 3)

	updates, err := r.UpdateMuts(promo)
	require.NoError(t, err)
	assert.Len(t, updates, 4, "row, link delete and two links")

	check := r.VersionCheck("p8", 2)
	assert.Equal(t, "promotions", check.Table)
	assert.Equal(t, "version", check.Column)
	assert.Equal(t, int64(2), check.Expected)

	_, err = r.InsertMuts(domain.NewPromotion("p9", "Kosong", nil))
	assert.ErrorIs(t, err, domain.ErrInvalidVariant)
}
