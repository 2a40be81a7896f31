package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Wire names of validated fields.
const (
	FieldNama              = "nama"
	FieldKode              = "kode"
	FieldTanggalMulai      = "tanggalMulai"
	FieldTanggalSelesai    = "tanggalSelesai"
	FieldMinQuantity       = "minQuantity"
	FieldStatus            = "status"
	FieldTipeProdukBerlaku = "tipeProdukBerlaku"
	FieldTipe              = "tipe"
	FieldNilai             = "nilai"
	FieldProdukIDs         = "produkIds"
	FieldTipeBundling      = "tipeBundling"
	FieldHargaBundling     = "hargaBundling"
	FieldDiskonBundling    = "diskonBundling"
	FieldTipeBuyGet        = "tipeBuyGet"
	FieldProdukX           = "produkX"
	FieldProdukY           = "produkY"
	FieldBuyQuantity       = "buyQuantity"
	FieldGetQuantity       = "getQuantity"
)

// ValidationCode is a stable, localizable key for a rule violation.
type ValidationCode string

const (
	CodeRequired       ValidationCode = "required"
	CodeInvalidFormat  ValidationCode = "invalid_format"
	CodeInvalidOption  ValidationCode = "invalid_option"
	CodeDateInPast     ValidationCode = "date_in_past"
	CodeDateOrder      ValidationCode = "date_order"
	CodeMinValue       ValidationCode = "min_value"
	CodeRange          ValidationCode = "range"
	CodeTooFewItems    ValidationCode = "too_few_items"
	CodeUnknownProduct ValidationCode = "unknown_product"
)

// Percent bounds shared by the validator and the price calculator.
const (
	MaxPercent = 90
	minPercent = 0 // exclusive
)

var kodePattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// ValidationError is one violated rule on one field.
type ValidationError struct {
	Field   string         `json:"field"`
	Code    ValidationCode `json:"code"`
	Message string         `json:"message"`
}

// ValidationResult holds the violations found in a promotion, in rule order.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid reports whether no rule was violated.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Field returns the violations recorded for one field.
func (r *ValidationResult) Field(name string) []ValidationError {
	var out []ValidationError
	for _, e := range r.Errors {
		if e.Field == name {
			out = append(out, e)
		}
	}
	return out
}

func (r *ValidationResult) add(field string, code ValidationCode, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validator checks promotion drafts against structural and variant rules.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks promo and collects every violation. products resolves the
// IDs referenced by buy-X-get-Y promotions; now supplies the current year.
// A promotion without a variant is a contract violation and returns ErrInvalidVariant.
func (v *Validator) Validate(promo *Promotion, products map[string]Product, now time.Time) (*ValidationResult, error) {
	if _, err := promo.Kind(); err != nil {
		return nil, err
	}

	result := &ValidationResult{}

	if strings.TrimSpace(promo.Nama) == "" {
		result.add(FieldNama, CodeRequired, "nama must not be empty")
	}

	if promo.Kode != "" && !kodePattern.MatchString(promo.Kode) {
		result.add(FieldKode, CodeInvalidFormat, "kode must contain only A-Z, 0-9, _ and -")
	}

	v.validateDates(result, promo, now)

	if promo.MinQuantity < 0 {
		result.add(FieldMinQuantity, CodeMinValue, "minQuantity must be at least 0, got %d", promo.MinQuantity)
	}

	if !promo.Status.IsValid() {
		result.add(FieldStatus, CodeInvalidOption, "status %q is not supported", promo.Status)
	}

	if promo.TipeProdukBerlaku != "" && !promo.TipeProdukBerlaku.IsValid() {
		result.add(FieldTipeProdukBerlaku, CodeInvalidOption, "tipeProdukBerlaku %q is not supported", promo.TipeProdukBerlaku)
	}

	if d, ok := promo.ProductDiscount(); ok {
		validateProductDiscount(result, d)
	} else if b, ok := promo.Bundle(); ok {
		validateBundle(result, b)
	} else if bxgy, ok := promo.BuyXGetY(); ok {
		validateBuyXGetY(result, bxgy, products)
	} else {
		return nil, fmt.Errorf("%w: %T", ErrInvalidVariant, promo.Variant)
	}

	return result, nil
}

func (v *Validator) validateDates(result *ValidationResult, promo *Promotion, now time.Time) {
	currentYear := now.Year()

	if promo.TanggalMulai != nil && promo.TanggalMulai.Year() < currentYear {
		result.add(FieldTanggalMulai, CodeDateInPast, "tanggalMulai must be in %d or later", currentYear)
	}
	if promo.TanggalSelesai != nil && promo.TanggalSelesai.Year() < currentYear {
		result.add(FieldTanggalSelesai, CodeDateInPast, "tanggalSelesai must be in %d or later", currentYear)
	}
	if promo.TanggalMulai != nil && promo.TanggalSelesai != nil && promo.TanggalSelesai.Before(*promo.TanggalMulai) {
		result.add(FieldTanggalSelesai, CodeDateOrder, "tanggalSelesai must not be before tanggalMulai")
	}
}

func validateProductDiscount(result *ValidationResult, d ProductDiscount) {
	if len(d.ProdukIDs) < 1 {
		result.add(FieldProdukIDs, CodeTooFewItems, "at least 1 product is required")
	}

	switch d.Tipe {
	case DiscountPersen:
		if !percentInRange(d.Nilai) {
			result.add(FieldNilai, CodeRange, "nilai must be greater than 0 and at most %d, got %v", MaxPercent, d.Nilai)
		}
	case DiscountNominal:
		if !(d.Nilai > 0) {
			result.add(FieldNilai, CodeMinValue, "nilai must be greater than 0, got %v", d.Nilai)
		}
	default:
		result.add(FieldTipe, CodeInvalidOption, "tipe %q is not supported", d.Tipe)
	}
}

func validateBundle(result *ValidationResult, b Bundle) {
	if len(b.ProdukIDs) < 2 {
		result.add(FieldProdukIDs, CodeTooFewItems, "at least 2 products are required, got %d", len(b.ProdukIDs))
	}

	switch b.TipeBundling {
	case BundleHargaTetap:
		if b.HargaBundling <= 0 {
			result.add(FieldHargaBundling, CodeMinValue, "hargaBundling must be greater than 0, got %d", b.HargaBundling)
		}
	case BundleDiskonPersen:
		if !percentInRange(b.DiskonBundling) {
			result.add(FieldDiskonBundling, CodeRange, "diskonBundling must be greater than 0 and at most %d, got %v", MaxPercent, b.DiskonBundling)
		}
	default:
		result.add(FieldTipeBundling, CodeInvalidOption, "tipeBundling %q is not supported", b.TipeBundling)
	}
}

func validateBuyXGetY(result *ValidationResult, b BuyXGetY, products map[string]Product) {
	switch {
	case b.ProdukX == "":
		result.add(FieldProdukX, CodeRequired, "produkX is required")
	case !productExists(products, b.ProdukX):
		result.add(FieldProdukX, CodeUnknownProduct, "produkX %q does not exist", b.ProdukX)
	}

	switch b.TipeBuyGet {
	case BuyGetSama:
	case BuyGetBeda:
		switch {
		case b.ProdukY == "":
			result.add(FieldProdukY, CodeRequired, "produkY is required when tipeBuyGet is beda")
		case !productExists(products, b.ProdukY):
			result.add(FieldProdukY, CodeUnknownProduct, "produkY %q does not exist", b.ProdukY)
		}
	default:
		result.add(FieldTipeBuyGet, CodeInvalidOption, "tipeBuyGet %q is not supported", b.TipeBuyGet)
	}

	if b.BuyQuantity < 1 {
		result.add(FieldBuyQuantity, CodeMinValue, "buyQuantity must be at least 1, got %d", b.BuyQuantity)
	}
	if b.GetQuantity < 1 {
		result.add(FieldGetQuantity, CodeMinValue, "getQuantity must be at least 1, got %d", b.GetQuantity)
	}
}

func percentInRange(p float64) bool {
	return p > minPercent && p <= MaxPercent
}

func productExists(products map[string]Product, id string) bool {
	_, ok := products[id]
	return ok
}
