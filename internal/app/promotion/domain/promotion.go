package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage layout for promotion dates.
const DateLayout = "2006-01-02"

// PromotionStatus is the status flag an operator sets on a promotion.
type PromotionStatus string

const (
	StatusAktif    PromotionStatus = "aktif"
	StatusNonaktif PromotionStatus = "nonaktif"
)

// IsValid reports whether s is a known status flag.
func (s PromotionStatus) IsValid() bool {
	return s == StatusAktif || s == StatusNonaktif
}

// ApplicableProductType narrows a promotion to a kind of product.
// It is descriptive only; the engine does not filter on it.
type ApplicableProductType string

const (
	ApplicableSemua  ApplicableProductType = "semua"
	ApplicableCurah  ApplicableProductType = "curah"
	ApplicableSatuan ApplicableProductType = "satuan"
)

// IsValid reports whether t is a known applicability value.
func (t ApplicableProductType) IsValid() bool {
	switch t {
	case ApplicableSemua, ApplicableCurah, ApplicableSatuan:
		return true
	}
	return false
}

// VariantKind is the discriminant of the promotion union.
type VariantKind string

const (
	KindProductDiscount VariantKind = "diskon_produk"
	KindBundle          VariantKind = "bundling"
	KindBuyXGetY        VariantKind = "buy_x_get_y"
)

// ParseVariantKind returns ErrInvalidVariant for unknown discriminants.
func ParseVariantKind(s string) (VariantKind, error) {
	switch k := VariantKind(s); k {
	case KindProductDiscount, KindBundle, KindBuyXGetY:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVariant, s)
}

// Variant holds the fields specific to one kind of promotion.
// The set of implementations is closed: ProductDiscount, Bundle and BuyXGetY.
type Variant interface {
	Kind() VariantKind
	// ProductIDs lists every product the variant references.
	ProductIDs() []string
	isVariant()
}

// DiscountType selects how ProductDiscount.Nilai is interpreted.
type DiscountType string

const (
	DiscountPersen  DiscountType = "persen"
	DiscountNominal DiscountType = "nominal"
)

// ProductDiscount takes a percentage or a fixed amount off each listed product.
type ProductDiscount struct {
	Tipe      DiscountType
	Nilai     float64
	ProdukIDs []string
}

func (ProductDiscount) Kind() VariantKind { return KindProductDiscount }
func (v ProductDiscount) ProductIDs() []string {
	return append([]string(nil), v.ProdukIDs...)
}
func (ProductDiscount) isVariant() {}

// BundleType selects how a bundle is priced.
type BundleType string

const (
	BundleHargaTetap   BundleType = "harga_tetap"
	BundleDiskonPersen BundleType = "diskon_persen"
)

// Bundle sells a set of products together at a fixed price or a percentage off.
type Bundle struct {
	TipeBundling   BundleType
	HargaBundling  int64
	DiskonBundling float64
	ProdukIDs      []string
}

func (Bundle) Kind() VariantKind { return KindBundle }
func (v Bundle) ProductIDs() []string {
	return append([]string(nil), v.ProdukIDs...)
}
func (Bundle) isVariant() {}

// BuyGetType says whether the free item is the purchased product or another one.
type BuyGetType string

const (
	BuyGetSama BuyGetType = "sama"
	BuyGetBeda BuyGetType = "beda"
)

// BuyXGetY gives GetQuantity free units for every BuyQuantity units of ProdukX.
type BuyXGetY struct {
	TipeBuyGet  BuyGetType
	ProdukX     string
	ProdukY     string // empty unless TipeBuyGet is beda
	BuyQuantity int64
	GetQuantity int64
}

func (BuyXGetY) Kind() VariantKind { return KindBuyXGetY }
func (v BuyXGetY) ProductIDs() []string {
	ids := make([]string, 0, 2)
	if v.ProdukX != "" {
		ids = append(ids, v.ProdukX)
	}
	if v.TipeBuyGet == BuyGetBeda && v.ProdukY != "" && v.ProdukY != v.ProdukX {
		ids = append(ids, v.ProdukY)
	}
	return ids
}
func (BuyXGetY) isVariant() {}

// Promotion is a promotion configuration as stored by the repository.
type Promotion struct {
	ID                string
	Nama              string
	Kode              string
	TanggalMulai      *time.Time
	TanggalSelesai    *time.Time
	MinQuantity       int64
	Status            PromotionStatus
	TipeProdukBerlaku ApplicableProductType
	Deskripsi         string
	Variant           Variant

	// Version increases on every stored write and guards concurrent updates.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPromotion returns a promotion with the defaults applied to a fresh draft.
func NewPromotion(id, nama string, variant Variant) *Promotion {
	return &Promotion{
		ID:                id,
		Nama:              nama,
		Status:            StatusAktif,
		TipeProdukBerlaku: ApplicableSemua,
		Variant:           variant,
	}
}

// Draft holds the fields an operator edits. Status is set separately.
type Draft struct {
	Nama              string
	Kode              string
	TanggalMulai      *time.Time
	TanggalSelesai    *time.Time
	MinQuantity       int64
	TipeProdukBerlaku ApplicableProductType
	Deskripsi         string
	Variant           Variant
}

// ApplyDraft replaces the editable fields of p. An empty TipeProdukBerlaku
// falls back to semua.
func (p *Promotion) ApplyDraft(d Draft) {
	p.Nama = d.Nama
	p.Kode = d.Kode
	p.TanggalMulai = d.TanggalMulai
	p.TanggalSelesai = d.TanggalSelesai
	p.MinQuantity = d.MinQuantity
	p.TipeProdukBerlaku = d.TipeProdukBerlaku
	if p.TipeProdukBerlaku == "" {
		p.TipeProdukBerlaku = ApplicableSemua
	}
	p.Deskripsi = d.Deskripsi
	p.Variant = d.Variant
}

// Kind returns the variant discriminant, or ErrInvalidVariant when none is set.
// A nil pointer variant counts as none.
func (p *Promotion) Kind() (VariantKind, error) {
	v := p.variant()
	if v == nil {
		return "", ErrInvalidVariant
	}
	return v.Kind(), nil
}

// ProductIDs lists the products the promotion references.
func (p *Promotion) ProductIDs() []string {
	v := p.variant()
	if v == nil {
		return nil
	}
	return v.ProductIDs()
}

// variant normalizes pointer variants to their value form.
func (p *Promotion) variant() Variant {
	if p == nil || p.Variant == nil {
		return nil
	}
	if d, ok := p.ProductDiscount(); ok {
		return d
	}
	if b, ok := p.Bundle(); ok {
		return b
	}
	if b, ok := p.BuyXGetY(); ok {
		return b
	}
	return nil
}

// IsAktif reports whether the operator has enabled the promotion.
func (p *Promotion) IsAktif() bool {
	return p.Status == StatusAktif
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders a promotion date; nil yields an empty string.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ProductDiscount returns the discount variant when the promotion is one.
func (p *Promotion) ProductDiscount() (ProductDiscount, bool) {
	switch v := p.Variant.(type) {
	case ProductDiscount:
		return v, true
	case *ProductDiscount:
		if v != nil {
			return *v, true
		}
	}
	return ProductDiscount{}, false
}

// Bundle returns the bundle variant when the promotion is one.
func (p *Promotion) Bundle() (Bundle, bool) {
	switch v := p.Variant.(type) {
	case Bundle:
		return v, true
	case *Bundle:
		if v != nil {
			return *v, true
		}
	}
	return Bundle{}, false
}

// BuyXGetY returns the buy-X-get-Y variant when the promotion is one.
func (p *Promotion) BuyXGetY() (BuyXGetY, bool) {
	switch v := p.Variant.(type) {
	case BuyXGetY:
		return v, true
	case *BuyXGetY:
		if v != nil {
			return *v, true
		}
	}
	return BuyXGetY{}, false
}
