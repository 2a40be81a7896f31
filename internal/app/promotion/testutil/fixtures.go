package testutil

import (
	"time"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
)

// Date returns a promotion date at midnight UTC.
func Date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// DiscountDraft is a valid 10% discount on beras and gula.
func DiscountDraft() domain.Draft {
	return domain.Draft{
		Nama:         "Diskon Sembako",
		Kode:         "SEMBAKO10",
		TanggalMulai: Date(2026, 10, 1),
		Variant: domain.ProductDiscount{
			Tipe:      domain.DiscountPersen,
			Nilai:     10,
			ProdukIDs: []string{"p-beras", "p-gula"},
		},
	}
}

// BundleDraft is a valid fixed price bundle of beras and gula.
func BundleDraft() domain.Draft {
	return domain.Draft{
		Nama: "Paket Hemat",
		Variant: domain.Bundle{
			TipeBundling:  domain.BundleHargaTetap,
			HargaBundling: 20000,
			ProdukIDs:     []string{"p-beras", "p-gula"},
		},
	}
}

// BuyXGetYDraft is a valid buy 3 get 1 on sabun.
func BuyXGetYDraft() domain.Draft {
	return domain.Draft{
		Nama: "Beli 3 Gratis 1",
		Variant: domain.BuyXGetY{
			TipeBuyGet:  domain.BuyGetSama,
			ProdukX:     "p-sabun",
			BuyQuantity: 3,
			GetQuantity: 1,
		},
	}
}

// StoredPromotion returns a stored promotion built from draft.
func StoredPromotion(id string, draft domain.Draft) *domain.Promotion {
	p := domain.NewPromotion(id, "", nil)
	p.ApplyDraft(draft)
	p.Version = 1
	p.CreatedAt = Now.Add(-24 * time.Hour)
	p.UpdatedAt = p.CreatedAt
	return p
}
