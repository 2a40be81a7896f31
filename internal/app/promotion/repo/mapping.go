package repo

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/models/m_product"
	"github.com/light-bringer/promo-engine/internal/models/m_promotion"
	"github.com/light-bringer/promo-engine/internal/models/m_promotion_product"
)

// promotionToData flattens a promotion into its row and product links.
func promotionToData(promo *domain.Promotion) (*m_promotion.Data, []*m_promotion_product.Data, error) {
	kind, err := promo.Kind()
	if err != nil {
		return nil, nil, err
	}

	data := &m_promotion.Data{
		PromotionID:       promo.ID,
		Nama:              promo.Nama,
		Kode:              nullString(promo.Kode),
		StartDate:         nullDate(promo.TanggalMulai),
		EndDate:           nullDate(promo.TanggalSelesai),
		MinQuantity:       promo.MinQuantity,
		Status:            string(promo.Status),
		TipeProdukBerlaku: string(promo.TipeProdukBerlaku),
		Deskripsi:         nullString(promo.Deskripsi),
		Variant:           string(kind),
		Version:           promo.Version,
	}

	var links []*m_promotion_product.Data
	link := func(productID, role string) {
		links = append(links, &m_promotion_product.Data{
			PromotionID: promo.ID,
			Position:    int64(len(links)),
			ProductID:   productID,
			Role:        role,
		})
	}

	if d, ok := promo.ProductDiscount(); ok {
		data.DiscountType = nullString(string(d.Tipe))
		data.DiscountValue = spanner.NullFloat64{Float64: d.Nilai, Valid: true}
		for _, id := range d.ProdukIDs {
			link(id, m_promotion_product.RoleItem)
		}
	} else if b, ok := promo.Bundle(); ok {
		data.BundleType = nullString(string(b.TipeBundling))
		data.BundlePrice = spanner.NullInt64{Int64: b.HargaBundling, Valid: true}
		data.BundlePercent = spanner.NullFloat64{Float64: b.DiskonBundling, Valid: true}
		for _, id := range b.ProdukIDs {
			link(id, m_promotion_product.RoleItem)
		}
	} else if b, ok := promo.BuyXGetY(); ok {
		data.BuyGetType = nullString(string(b.TipeBuyGet))
		data.BuyQuantity = spanner.NullInt64{Int64: b.BuyQuantity, Valid: true}
		data.GetQuantity = spanner.NullInt64{Int64: b.GetQuantity, Valid: true}
		if b.ProdukX != "" {
			link(b.ProdukX, m_promotion_product.RoleX)
		}
		if b.TipeBuyGet == domain.BuyGetBeda && b.ProdukY != "" {
			link(b.ProdukY, m_promotion_product.RoleY)
		}
	} else {
		return nil, nil, fmt.Errorf("%w: %T", domain.ErrInvalidVariant, promo.Variant)
	}

	return data, links, nil
}

// dataToPromotion rebuilds a promotion from its row and links ordered by position.
func dataToPromotion(data *m_promotion.Data, links []*m_promotion_product.Data) (*domain.Promotion, error) {
	kind, err := domain.ParseVariantKind(data.Variant)
	if err != nil {
		return nil, fmt.Errorf("promotion %s: %w", data.PromotionID, err)
	}

	promo := &domain.Promotion{
		ID:                data.PromotionID,
		Nama:              data.Nama,
		Kode:              data.Kode.StringVal,
		TanggalMulai:      dateOf(data.StartDate),
		TanggalSelesai:    dateOf(data.EndDate),
		MinQuantity:       data.MinQuantity,
		Status:            domain.PromotionStatus(data.Status),
		TipeProdukBerlaku: domain.ApplicableProductType(data.TipeProdukBerlaku),
		Deskripsi:         data.Deskripsi.StringVal,
		Version:           data.Version,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	switch kind {
	case domain.KindProductDiscount:
		promo.Variant = domain.ProductDiscount{
			Tipe:      domain.DiscountType(data.DiscountType.StringVal),
			Nilai:     data.DiscountValue.Float64,
			ProdukIDs: linkedIDs(links, m_promotion_product.RoleItem),
		}
	case domain.KindBundle:
		promo.Variant = domain.Bundle{
			TipeBundling:   domain.BundleType(data.BundleType.StringVal),
			HargaBundling:  data.BundlePrice.Int64,
			DiskonBundling: data.BundlePercent.Float64,
			ProdukIDs:      linkedIDs(links, m_promotion_product.RoleItem),
		}
	case domain.KindBuyXGetY:
		v := domain.BuyXGetY{
			TipeBuyGet:  domain.BuyGetType(data.BuyGetType.StringVal),
			BuyQuantity: data.BuyQuantity.Int64,
			GetQuantity: data.GetQuantity.Int64,
		}
		if ids := linkedIDs(links, m_promotion_product.RoleX); len(ids) > 0 {
			v.ProdukX = ids[0]
		}
		if ids := linkedIDs(links, m_promotion_product.RoleY); len(ids) > 0 {
			v.ProdukY = ids[0]
		}
		promo.Variant = v
	}

	return promo, nil
}

func dataToProduct(data *m_product.Data) domain.Product {
	return domain.Product{
		ID:        data.ProductID,
		Nama:      data.Nama,
		SKU:       data.SKU,
		HargaJual: data.HargaJual,
		Tipe:      domain.ProductType(data.Tipe),
	}
}

func linkedIDs(links []*m_promotion_product.Data, role string) []string {
	var ids []string
	for _, l := range links {
		if l.Role == role {
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func nullDate(t *time.Time) spanner.NullDate {
	if t == nil {
		return spanner.NullDate{}
	}
	return spanner.NullDate{Date: civil.DateOf(*t), Valid: true}
}

// dateOf returns the stored calendar date at midnight UTC.
func dateOf(d spanner.NullDate) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Date.In(time.UTC)
	return &t
}
