package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotion_Kind(t *testing.T) {
	t.Run("each variant reports its kind", func(t *testing.T) {
		for want, v := range map[VariantKind]Variant{
			KindProductDiscount: ProductDiscount{},
			KindBundle:          &Bundle{},
			KindBuyXGetY:        BuyXGetY{},
		} {
			got, err := NewPromotion("p", "n", v).Kind()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("missing variant", func(t *testing.T) {
		_, err := NewPromotion("p", "n", nil).Kind()
		assert.ErrorIs(t, err, ErrInvalidVariant)
	})

	t.Run("nil pointer variant", func(t *testing.T) {
		var d *ProductDiscount
		_, err := NewPromotion("p", "n", d).Kind()
		assert.ErrorIs(t, err, ErrInvalidVariant)
		assert.Nil(t, NewPromotion("p", "n", d).ProductIDs())
	})
}

func TestNewPromotion_Defaults(t *testing.T) {
	p := NewPromotion("p", "n", Bundle{})

	assert.Equal(t, StatusAktif, p.Status)
	assert.Equal(t, ApplicableSemua, p.TipeProdukBerlaku)
	assert.True(t, p.IsAktif())
}

func TestPromotion_ApplyDraft(t *testing.T) {
	p := NewPromotion("p", "Lama", Bundle{})
	p.Status = StatusNonaktif
	p.Version = 4
	p.Kode = "LAMA"

	p.ApplyDraft(Draft{Nama: "Baru", Variant: ProductDiscount{Tipe: DiscountPersen, Nilai: 5}})

	assert.Equal(t, "Baru", p.Nama)
	assert.Empty(t, p.Kode)
	assert.Equal(t, ApplicableSemua, p.TipeProdukBerlaku)
	assert.Equal(t, StatusNonaktif, p.Status, "status is not part of a draft")
	assert.Equal(t, int64(4), p.Version)
	kind, err := p.Kind()
	require.NoError(t, err)
	assert.Equal(t, KindProductDiscount, kind)
}

func TestBuyXGetY_ProductIDs(t *testing.T) {
	assert.Equal(t, []string{"x"}, BuyXGetY{TipeBuyGet: BuyGetSama, ProdukX: "x", ProdukY: "y"}.ProductIDs())
	assert.Equal(t, []string{"x", "y"}, BuyXGetY{TipeBuyGet: BuyGetBeda, ProdukX: "x", ProdukY: "y"}.ProductIDs())
	assert.Equal(t, []string{"x"}, BuyXGetY{TipeBuyGet: BuyGetBeda, ProdukX: "x", ProdukY: "x"}.ProductIDs())
}

func TestProductIDs_ReturnsCopy(t *testing.T) {
	d := ProductDiscount{ProdukIDs: []string{"a", "b"}}
	ids := d.ProductIDs()
	ids[0] = "changed"

	assert.Equal(t, "a", d.ProdukIDs[0])
}

func TestParseVariantKind(t *testing.T) {
	k, err := ParseVariantKind("bundling")
	require.NoError(t, err)
	assert.Equal(t, KindBundle, k)

	_, err = ParseVariantKind("cashback")
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31", FormatDate(&d))

	_, err = ParseDate("31/12/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.Empty(t, FormatDate(nil))
}

func TestValidationFailedError(t *testing.T) {
	err := error(&ValidationFailedError{Errors: []ValidationError{{Field: FieldNilai, Code: CodeRange}}})

	vf, ok := AsValidationFailed(err)
	require.True(t, ok)
	assert.Len(t, vf.Errors, 1)
	assert.Contains(t, err.Error(), "nilai")

	_, ok = AsValidationFailed(ErrPromotionNotFound)
	assert.False(t, ok)
}
