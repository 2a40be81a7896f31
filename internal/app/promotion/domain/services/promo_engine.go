package services

import (
	"fmt"
	"time"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
)

// PromoEngine is the single entry point the application layer uses to
// validate, price and classify promotions. It holds no state and is safe for
// concurrent use.
type PromoEngine struct {
	validator  *domain.Validator
	calculator *domain.PricingCalculator
	resolver   *domain.StatusResolver
}

// NewPromoEngine creates a new PromoEngine.
func NewPromoEngine() *PromoEngine {
	return &PromoEngine{
		validator:  domain.NewValidator(),
		calculator: domain.NewPricingCalculator(),
		resolver:   domain.NewStatusResolver(),
	}
}

// Validate checks promo against every rule. products must contain the
// products the promotion references that exist in the catalog.
func (e *PromoEngine) Validate(promo *domain.Promotion, products map[string]domain.Product, now time.Time) (*domain.ValidationResult, error) {
	return e.validator.Validate(promo, products, now)
}

// PriceForDiscount previews a diskon_produk promotion.
func (e *PromoEngine) PriceForDiscount(promo *domain.Promotion, products map[string]domain.Product) (*domain.DiscountResult, error) {
	d, ok := promo.ProductDiscount()
	if !ok {
		return nil, mismatch(promo, domain.KindProductDiscount)
	}
	return e.calculator.ComputeProductDiscount(d, ResolveProducts(d.ProdukIDs, products)), nil
}

// PriceForBundle previews a bundling promotion.
func (e *PromoEngine) PriceForBundle(promo *domain.Promotion, products map[string]domain.Product) (*domain.BundleResult, error) {
	b, ok := promo.Bundle()
	if !ok {
		return nil, mismatch(promo, domain.KindBundle)
	}
	return e.calculator.ComputeBundlePrice(b, ResolveProducts(b.ProdukIDs, products)), nil
}

// PriceForBuyXGetY previews a buy_x_get_y promotion for a purchase of
// sampleQuantity units of the trigger product. A nil result with a nil error
// means the promotion is not complete enough to price yet.
func (e *PromoEngine) PriceForBuyXGetY(promo *domain.Promotion, products map[string]domain.Product, sampleQuantity int64) (*domain.BuyXGetYResult, error) {
	b, ok := promo.BuyXGetY()
	if !ok {
		return nil, mismatch(promo, domain.KindBuyXGetY)
	}
	return e.calculator.ComputeBuyXGetY(b, lookup(products, b.ProdukX), lookup(products, b.ProdukY), sampleQuantity), nil
}

// ResolveStatus returns the lifecycle phase of promo at now.
func (e *PromoEngine) ResolveStatus(promo *domain.Promotion, now time.Time) domain.StatusResult {
	return e.resolver.Resolve(promo, now)
}

// Preview outcomes, used for metrics and logging.
const (
	OutcomeValid         = "valid"
	OutcomeInvalid       = "invalid"
	OutcomeIndeterminate = "indeterminate"
)

// Preview is the price preview of a promotion of any variant. Exactly one of
// Discount, Bundle and BuyXGetY is set, except for an indeterminate
// buy-X-get-Y preview where none is.
type Preview struct {
	Kind     domain.VariantKind
	Discount *domain.DiscountResult
	Bundle   *domain.BundleResult
	BuyXGetY *domain.BuyXGetYResult
}

// IsValid reports whether the preview shows a positive saving.
func (p *Preview) IsValid() bool {
	switch {
	case p.Discount != nil:
		return p.Discount.IsValid
	case p.Bundle != nil:
		return p.Bundle.IsValid
	case p.BuyXGetY != nil:
		return p.BuyXGetY.IsValid
	}
	return false
}

// Indeterminate reports whether the promotion could not be priced yet.
func (p *Preview) Indeterminate() bool {
	return p.Discount == nil && p.Bundle == nil && p.BuyXGetY == nil
}

// Outcome classifies the preview as valid, invalid or indeterminate.
func (p *Preview) Outcome() string {
	if p.Indeterminate() {
		return OutcomeIndeterminate
	}
	if p.IsValid() {
		return OutcomeValid
	}
	return OutcomeInvalid
}

// Preview dispatches on the promotion variant. sampleQuantity is only used
// by buy_x_get_y promotions.
func (e *PromoEngine) Preview(promo *domain.Promotion, products map[string]domain.Product, sampleQuantity int64) (*Preview, error) {
	kind, err := promo.Kind()
	if err != nil {
		return nil, err
	}

	preview := &Preview{Kind: kind}
	switch kind {
	case domain.KindProductDiscount:
		preview.Discount, err = e.PriceForDiscount(promo, products)
	case domain.KindBundle:
		preview.Bundle, err = e.PriceForBundle(promo, products)
	case domain.KindBuyXGetY:
		preview.BuyXGetY, err = e.PriceForBuyXGetY(promo, products, sampleQuantity)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidVariant, kind)
	}
	if err != nil {
		return nil, err
	}
	return preview, nil
}

// ResolveProducts returns the products for ids in order, skipping IDs that
// are not in the index.
func ResolveProducts(ids []string, index map[string]domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := index[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func lookup(index map[string]domain.Product, id string) *domain.Product {
	if id == "" {
		return nil
	}
	p, ok := index[id]
	if !ok {
		return nil
	}
	return &p
}

func mismatch(promo *domain.Promotion, want domain.VariantKind) error {
	got, err := promo.Kind()
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: want %s, got %s", domain.ErrVariantMismatch, want, got)
}
