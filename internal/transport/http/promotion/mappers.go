package promotion

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/app/promotion/domain/services"
)

// toDraft maps the wire request onto a domain draft. Only the field group of
// the selected variant is read.
func toDraft(req *PromotionRequest) (domain.Draft, error) {
	mulai, err := parseOptionalDate(req.TanggalMulai)
	if err != nil {
		return domain.Draft{}, err
	}
	selesai, err := parseOptionalDate(req.TanggalSelesai)
	if err != nil {
		return domain.Draft{}, err
	}

	draft := domain.Draft{
		Nama:              req.Nama,
		Kode:              req.Kode,
		TanggalMulai:      mulai,
		TanggalSelesai:    selesai,
		MinQuantity:       req.MinQuantity,
		TipeProdukBerlaku: domain.ApplicableProductType(req.TipeProdukBerlaku),
		Deskripsi:         req.Deskripsi,
	}

	kind, err := domain.ParseVariantKind(req.Variant)
	if err != nil {
		return domain.Draft{}, err
	}
	switch kind {
	case domain.KindProductDiscount:
		draft.Variant = domain.ProductDiscount{
			Tipe:      domain.DiscountType(req.Tipe),
			Nilai:     req.Nilai,
			ProdukIDs: req.ProdukIDs,
		}
	case domain.KindBundle:
		draft.Variant = domain.Bundle{
			TipeBundling:   domain.BundleType(req.TipeBundling),
			HargaBundling:  req.HargaBundling,
			DiskonBundling: req.DiskonBundling,
			ProdukIDs:      req.ProdukIDs,
		}
	case domain.KindBuyXGetY:
		v := domain.BuyXGetY{
			TipeBuyGet:  domain.BuyGetType(req.TipeBuyGet),
			ProdukX:     req.ProdukX,
			BuyQuantity: req.BuyQuantity,
			GetQuantity: req.GetQuantity,
		}
		if req.ProdukY != nil {
			v.ProdukY = *req.ProdukY
		}
		draft.Variant = v
	}
	return draft, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := domain.FormatDate(t)
	return &s
}

// toPromotionResponse renders a promotion. status may be nil when the
// lifecycle was not resolved.
func toPromotionResponse(p *domain.Promotion, status *domain.StatusResult) PromotionResponse {
	resp := PromotionResponse{
		ID:                p.ID,
		Nama:              p.Nama,
		Kode:              p.Kode,
		TanggalMulai:      formatOptionalDate(p.TanggalMulai),
		TanggalSelesai:    formatOptionalDate(p.TanggalSelesai),
		MinQuantity:       p.MinQuantity,
		Status:            string(p.Status),
		TipeProdukBerlaku: string(p.TipeProdukBerlaku),
		Deskripsi:         p.Deskripsi,
		Version:           p.Version,
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		resp.CreatedAt = &created
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}

	if d, ok := p.ProductDiscount(); ok {
		resp.Variant = string(domain.KindProductDiscount)
		resp.Tipe = string(d.Tipe)
		resp.Nilai = &d.Nilai
		resp.ProdukIDs = d.ProductIDs()
	} else if b, ok := p.Bundle(); ok {
		resp.Variant = string(domain.KindBundle)
		resp.TipeBundling = string(b.TipeBundling)
		resp.ProdukIDs = b.ProductIDs()
		switch b.TipeBundling {
		case domain.BundleHargaTetap:
			resp.HargaBundling = &b.HargaBundling
		case domain.BundleDiskonPersen:
			resp.DiskonBundling = &b.DiskonBundling
		}
	} else if b, ok := p.BuyXGetY(); ok {
		resp.Variant = string(domain.KindBuyXGetY)
		resp.TipeBuyGet = string(b.TipeBuyGet)
		resp.ProdukX = b.ProdukX
		if b.TipeBuyGet == domain.BuyGetBeda && b.ProdukY != "" {
			resp.ProdukY = &b.ProdukY
		}
		resp.BuyQuantity = &b.BuyQuantity
		resp.GetQuantity = &b.GetQuantity
	}

	if status != nil {
		resp.Lifecycle = &LifecycleResponse{
			Phase:          string(status.Phase),
			DaysUntilStart: status.DaysUntilStart,
			DaysUntilEnd:   status.DaysUntilEnd,
		}
	}
	return resp
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{
			ID:        p.ID,
			Nama:      p.Nama,
			SKU:       p.SKU,
			HargaJual: p.HargaJual,
			Tipe:      string(p.Tipe),
		})
	}
	return out
}

func toValidationResponse(result *domain.ValidationResult) ValidationResponse {
	return ValidationResponse{
		Valid:  result.Valid(),
		Errors: toValidationEntries(result.Errors),
	}
}

func toValidationEntries(errs []domain.ValidationError) []ValidationErrorEntry {
	out := make([]ValidationErrorEntry, 0, len(errs))
	for _, e := range errs {
		out = append(out, ValidationErrorEntry{Field: e.Field, Code: string(e.Code), Message: e.Message})
	}
	return out
}

func toPreviewResponse(preview *services.Preview, products []domain.Product, sample int64) PreviewResponse {
	resp := PreviewResponse{
		Variant:  string(preview.Kind),
		Outcome:  preview.Outcome(),
		IsValid:  preview.IsValid(),
		Products: toProductResponses(products),
	}
	if preview.Kind == domain.KindBuyXGetY {
		resp.SampleQuantity = &sample
	}

	if d := preview.Discount; d != nil {
		lines := make([]DiscountLine, 0, len(d.Lines))
		for _, l := range d.Lines {
			lines = append(lines, DiscountLine{
				ProductID:          l.ProductID,
				HargaNormal:        units(l.NormalPrice),
				Diskon:             units(l.Discount),
				HargaSetelahDiskon: units(l.PriceAfter),
			})
		}
		resp.Discount = &DiscountPreview{
			Lines:              lines,
			TotalNormal:        units(d.TotalNormal),
			TotalDiscount:      units(d.TotalDiscount),
			TotalAfterDiscount: units(d.TotalAfterDiscount),
		}
	}
	if b := preview.Bundle; b != nil {
		resp.Bundle = &BundlePreview{
			TotalNormal:   units(b.TotalNormal),
			BundlePrice:   units(b.BundlePrice),
			Saving:        units(b.Saving),
			SavingPercent: percent(b.SavingPercent),
		}
	}
	if b := preview.BuyXGetY; b != nil {
		resp.BuyXGetY = &BuyXGetYPreview{
			Multiplier:         b.Multiplier,
			FreeUnits:          b.FreeUnits,
			FreeUnitPrice:      units(b.FreeUnitPrice),
			TotalNormal:        units(b.TotalNormal),
			TotalDiscount:      units(b.TotalDiscount),
			TotalAfterDiscount: units(b.TotalAfterDiscount),
		}
	}
	return resp
}

// units rounds money half away from zero to whole currency units.
func units(m *domain.Money) int64 {
	if m == nil {
		return 0
	}
	return decimal.NewFromBigRat(m.Rat(), 0).IntPart()
}

// percent rounds a percentage to two decimals.
func percent(r *big.Rat) *float64 {
	if r == nil {
		return nil
	}
	f, _ := decimal.NewFromBigRat(r, 2).Float64()
	return &f
}
