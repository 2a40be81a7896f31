package domain

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingCalculator_ComputeProductDiscount(t *testing.T) {
	pc := NewPricingCalculator()
	beras := Product{ID: "p-beras", HargaJual: 15000}
	gula := Product{ID: "p-gula", HargaJual: 10000}

	t.Run("percentage discount", func(t *testing.T) {
		result := pc.ComputeProductDiscount(ProductDiscount{Tipe: DiscountPersen, Nilai: 10}, []Product{beras, gula})

		require.Len(t, result.Lines, 2)
		assert.True(t, result.Lines[0].Discount.Equals(Units(1500)))
		assert.True(t, result.Lines[0].PriceAfter.Equals(Units(13500)))
		assert.True(t, result.Lines[1].Discount.Equals(Units(1000)))
		assert.True(t, result.TotalNormal.Equals(Units(25000)))
		assert.True(t, result.TotalDiscount.Equals(Units(2500)))
		assert.True(t, result.TotalAfterDiscount.Equals(Units(22500)))
		assert.True(t, result.IsValid)
	})

	t.Run("percentage above the cap is clamped to 90", func(t *testing.T) {
		result := pc.ComputeProductDiscount(ProductDiscount{Tipe: DiscountPersen, Nilai: 95}, []Product{gula})

		assert.True(t, result.TotalDiscount.Equals(Units(9000)))
		assert.True(t, result.TotalAfterDiscount.Equals(Units(1000)))
		assert.False(t, result.IsValid)
	})

	t.Run("fractional percentage is exact", func(t *testing.T) {
		result := pc.ComputeProductDiscount(ProductDiscount{Tipe: DiscountPersen, Nilai: 33.3}, []Product{gula})

		assert.True(t, result.TotalDiscount.Equals(Units(3330)))
	})

	t.Run("nominal discount never exceeds the price", func(t *testing.T) {
		result := pc.ComputeProductDiscount(ProductDiscount{Tipe: DiscountNominal, Nilai: 12000}, []Product{beras, gula})

		assert.True(t, result.Lines[0].Discount.Equals(Units(12000)))
		assert.True(t, result.Lines[1].Discount.Equals(Units(10000)))
		assert.True(t, result.Lines[1].PriceAfter.IsZero())
		assert.False(t, result.TotalAfterDiscount.IsNegative())
	})

	t.Run("zero or negative value gives no discount", func(t *testing.T) {
		for _, d := range []ProductDiscount{
			{Tipe: DiscountPersen, Nilai: 0},
			{Tipe: DiscountPersen, Nilai: -5},
			{Tipe: DiscountNominal, Nilai: -100},
		} {
			result := pc.ComputeProductDiscount(d, []Product{beras})
			assert.True(t, result.TotalDiscount.IsZero())
			assert.False(t, result.IsValid)
		}
	})

	t.Run("no products", func(t *testing.T) {
		result := pc.ComputeProductDiscount(ProductDiscount{Tipe: DiscountPersen, Nilai: 10}, nil)

		assert.Empty(t, result.Lines)
		assert.True(t, result.TotalNormal.IsZero())
		assert.False(t, result.IsValid)
	})
}

func TestPricingCalculator_ComputeBundlePrice(t *testing.T) {
	pc := NewPricingCalculator()
	products := []Product{{ID: "a", HargaJual: 10000}, {ID: "b", HargaJual: 15000}}

	t.Run("fixed price below the normal total", func(t *testing.T) {
		result := pc.ComputeBundlePrice(Bundle{TipeBundling: BundleHargaTetap, HargaBundling: 20000}, products)

		assert.True(t, result.TotalNormal.Equals(Units(25000)))
		assert.True(t, result.BundlePrice.Equals(Units(20000)))
		assert.True(t, result.Saving.Equals(Units(5000)))
		require.NotNil(t, result.SavingPercent)
		assert.Zero(t, big.NewRat(20, 1).Cmp(result.SavingPercent))
		assert.True(t, result.IsValid)
	})

	t.Run("fixed price above the normal total is reported, not rejected", func(t *testing.T) {
		result := pc.ComputeBundlePrice(Bundle{TipeBundling: BundleHargaTetap, HargaBundling: 30000}, products)

		assert.True(t, result.Saving.Equals(Units(-5000)))
		assert.False(t, result.IsValid)
	})

	t.Run("percentage bundle", func(t *testing.T) {
		result := pc.ComputeBundlePrice(Bundle{TipeBundling: BundleDiskonPersen, DiskonBundling: 20}, products)

		assert.True(t, result.BundlePrice.Equals(Units(20000)))
		assert.True(t, result.Saving.Equals(Units(5000)))
		assert.True(t, result.IsValid)
	})

	t.Run("percentage bundle is clamped", func(t *testing.T) {
		result := pc.ComputeBundlePrice(Bundle{TipeBundling: BundleDiskonPersen, DiskonBundling: 100}, products)

		assert.True(t, result.BundlePrice.Equals(Units(2500)))
		assert.True(t, result.BundlePrice.IsPositive())
		assert.False(t, result.IsValid)
	})

	t.Run("empty bundle has no saving percent", func(t *testing.T) {
		result := pc.ComputeBundlePrice(Bundle{TipeBundling: BundleHargaTetap, HargaBundling: 1000}, nil)

		assert.Nil(t, result.SavingPercent)
		assert.False(t, result.IsValid)
	})
}

func TestPricingCalculator_ComputeBuyXGetY(t *testing.T) {
	pc := NewPricingCalculator()
	sabun := &Product{ID: "p-sabun", HargaJual: 5000}
	sikat := &Product{ID: "p-sikat", HargaJual: 3000}

	t.Run("buy 3 get 1 of the same product", func(t *testing.T) {
		result := pc.ComputeBuyXGetY(BuyXGetY{TipeBuyGet: BuyGetSama, ProdukX: "p-sabun", BuyQuantity: 3, GetQuantity: 1}, sabun, nil, 6)

		require.NotNil(t, result)
		assert.Equal(t, int64(2), result.Multiplier)
		assert.Equal(t, int64(2), result.FreeUnits)
		assert.True(t, result.TotalNormal.Equals(Units(30000)))
		assert.True(t, result.TotalDiscount.Equals(Units(10000)))
		assert.True(t, result.TotalAfterDiscount.Equals(Units(20000)))
		assert.True(t, result.IsValid)
	})

	t.Run("free units priced at produkY for beda", func(t *testing.T) {
		result := pc.ComputeBuyXGetY(BuyXGetY{TipeBuyGet: BuyGetBeda, ProdukX: "p-sabun", ProdukY: "p-sikat", BuyQuantity: 2, GetQuantity: 1}, sabun, sikat, 6)

		require.NotNil(t, result)
		assert.Equal(t, int64(3), result.FreeUnits)
		assert.True(t, result.FreeUnitPrice.Equals(Units(3000)))
		assert.True(t, result.TotalNormal.Equals(Units(30000)))
		assert.True(t, result.TotalDiscount.Equals(Units(9000)))
	})

	t.Run("sample below the buy quantity earns nothing", func(t *testing.T) {
		result := pc.ComputeBuyXGetY(BuyXGetY{TipeBuyGet: BuyGetSama, BuyQuantity: 10, GetQuantity: 1}, sabun, nil, DefaultSampleQuantity)

		require.NotNil(t, result)
		assert.Zero(t, result.Multiplier)
		assert.True(t, result.TotalDiscount.IsZero())
		assert.False(t, result.IsValid)
	})

	t.Run("indeterminate inputs", func(t *testing.T) {
		assert.Nil(t, pc.ComputeBuyXGetY(BuyXGetY{TipeBuyGet: BuyGetSama, BuyQuantity: 0, GetQuantity: 1}, sabun, nil, 6))
		assert.Nil(t, pc.ComputeBuyXGetY(BuyXGetY{TipeBuyGet: BuyGetSama, BuyQuantity: 3, GetQuantity: 1}, nil, nil, 6))
		assert.Nil(t, pc.ComputeBuyXGetY(BuyXGetY{TipeBuyGet: BuyGetBeda, BuyQuantity: 3, GetQuantity: 1}, sabun, nil, 6))
		assert.Nil(t, pc.ComputeBuyXGetY(BuyXGetY{TipeBuyGet: BuyGetSama, BuyQuantity: 3, GetQuantity: 1}, sabun, nil, 0))
	})

	t.Run("free units that overflow int64 are indeterminate", func(t *testing.T) {
		b := BuyXGetY{TipeBuyGet: BuyGetSama, ProdukX: "p-sabun", BuyQuantity: 1, GetQuantity: 4}

		assert.Nil(t, pc.ComputeBuyXGetY(b, sabun, nil, math.MaxInt64/2))
		assert.Nil(t, pc.ComputeBuyXGetY(BuyXGetY{TipeBuyGet: BuyGetSama, BuyQuantity: 1, GetQuantity: math.MaxInt64}, sabun, nil, 2))
	})

	t.Run("largest free-unit count that fits", func(t *testing.T) {
		b := BuyXGetY{TipeBuyGet: BuyGetSama, ProdukX: "p-sabun", BuyQuantity: 1, GetQuantity: 1}

		result := pc.ComputeBuyXGetY(b, sabun, nil, math.MaxInt64)
		require.NotNil(t, result)
		assert.Equal(t, int64(math.MaxInt64), result.FreeUnits)
		assert.False(t, result.TotalDiscount.IsNegative())
		assert.True(t, result.TotalAfterDiscount.IsZero())
	})
}

func TestPricingCalculator_Idempotent(t *testing.T) {
	pc := NewPricingCalculator()
	products := []Product{{ID: "a", HargaJual: 7500}, {ID: "b", HargaJual: 12500}}
	d := ProductDiscount{Tipe: DiscountPersen, Nilai: 12.5}

	first := pc.ComputeProductDiscount(d, products)
	second := pc.ComputeProductDiscount(d, products)

	assert.True(t, first.TotalDiscount.Equals(second.TotalDiscount))
	assert.True(t, first.TotalAfterDiscount.Equals(second.TotalAfterDiscount))
}

func TestPricingCalculator_AgreesWithValidator(t *testing.T) {
	pc := NewPricingCalculator()
	products := []Product{{ID: "p-beras", HargaJual: 15000}, {ID: "p-gula", HargaJual: 10000}}
	ids := []string{"p-beras", "p-gula"}

	hasError := func(t *testing.T, p *Promotion, field string) bool {
		t.Helper()
		result, err := NewValidator().Validate(p, ProductIndex(products), validationNow)
		require.NoError(t, err)
		return len(result.Field(field)) > 0
	}

	tests := []struct {
		percent float64
		valid   bool
	}{
		{percent: 95, valid: false},
		{percent: 90, valid: true},
		{percent: 50, valid: true},
		{percent: 0.5, valid: true},
		{percent: 0, valid: false},
		{percent: -5, valid: false},
	}

	for _, tt := range tests {
		t.Run("diskon produk", func(t *testing.T) {
			d := ProductDiscount{Tipe: DiscountPersen, Nilai: tt.percent, ProdukIDs: ids}

			calc := pc.ComputeProductDiscount(d, products)
			rejected := hasError(t, NewPromotion("p", "Diskon", d), FieldNilai)

			assert.Equal(t, tt.valid, calc.IsValid, "nilai %v", tt.percent)
			assert.Equal(t, !tt.valid, rejected, "nilai %v", tt.percent)
		})

		t.Run("bundling", func(t *testing.T) {
			b := Bundle{TipeBundling: BundleDiskonPersen, DiskonBundling: tt.percent, ProdukIDs: ids}

			calc := pc.ComputeBundlePrice(b, products)
			rejected := hasError(t, NewPromotion("p", "Paket", b), FieldDiskonBundling)

			assert.Equal(t, tt.valid, calc.IsValid, "diskonBundling %v", tt.percent)
			assert.Equal(t, !tt.valid, rejected, "diskonBundling %v", tt.percent)
		})
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
		ok   bool
	}{
		{in: -1, want: 0, ok: false},
		{in: 0, want: 0, ok: false},
		{in: 0.1, want: 0.1, ok: true},
		{in: 90, want: 90, ok: true},
		{in: 150, want: 90, ok: true},
	}

	for _, tt := range tests {
		got, ok := ClampPercent(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ok, ok)
	}
}
