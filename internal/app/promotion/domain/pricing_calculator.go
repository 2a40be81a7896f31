package domain

import (
	"math"
	"math/big"
	"strconv"
)

// DefaultSampleQuantity is the purchase quantity preview screens use to
// illustrate a buy-X-get-Y promotion.
const DefaultSampleQuantity = 6

// LineDiscount is the discount computed for one product.
type LineDiscount struct {
	ProductID   string
	NormalPrice *Money
	Discount    *Money
	PriceAfter  *Money
}

// DiscountResult is the preview of a per-product discount.
type DiscountResult struct {
	Lines              []LineDiscount
	TotalNormal        *Money
	TotalDiscount      *Money
	TotalAfterDiscount *Money
	IsValid            bool
}

// BundleResult is the preview of a bundle price.
type BundleResult struct {
	TotalNormal   *Money
	BundlePrice   *Money
	Saving        *Money
	SavingPercent *big.Rat // nil when TotalNormal is zero
	IsValid       bool
}

// BuyXGetYResult is the preview of a buy-X-get-Y promotion for a sample purchase.
type BuyXGetYResult struct {
	SampleQuantity     int64
	Multiplier         int64
	FreeUnits          int64
	FreeUnitPrice      *Money
	TotalNormal        *Money
	TotalDiscount      *Money
	TotalAfterDiscount *Money
	IsValid            bool
}

// PricingCalculator is a domain service for promotion price previews.
//
// Every method is a pure function of its arguments. Inputs are not assumed
// to have passed validation: previews are recomputed while a draft is being
// edited, so percentages are clamped and missing references degrade to an
// indeterminate result instead of an error.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// ComputeProductDiscount applies d to every product and sums the results.
func (pc *PricingCalculator) ComputeProductDiscount(d ProductDiscount, products []Product) *DiscountResult {
	result := &DiscountResult{
		Lines:         make([]LineDiscount, 0, len(products)),
		TotalNormal:   Zero(),
		TotalDiscount: Zero(),
	}

	for _, p := range products {
		price := p.Price()
		discount := pc.lineDiscount(d, price)

		result.Lines = append(result.Lines, LineDiscount{
			ProductID:   p.ID,
			NormalPrice: price,
			Discount:    discount,
			PriceAfter:  price.Subtract(discount),
		})
		result.TotalNormal = result.TotalNormal.Add(price)
		result.TotalDiscount = result.TotalDiscount.Add(discount)
	}

	result.TotalAfterDiscount = result.TotalNormal.Subtract(result.TotalDiscount)
	// An out-of-range percent still previews at the clamped rate but is not valid.
	inRange := d.Tipe != DiscountPersen || percentInRange(d.Nilai)
	result.IsValid = inRange && result.TotalDiscount.IsPositive()
	return result
}

// lineDiscount never returns a negative amount or more than the price.
func (pc *PricingCalculator) lineDiscount(d ProductDiscount, price *Money) *Money {
	if price.IsNegative() || price.IsZero() {
		return Zero()
	}

	switch d.Tipe {
	case DiscountPersen:
		multiplier := percentMultiplier(d.Nilai)
		if multiplier == nil {
			return Zero()
		}
		return pc.CalculateDiscountAmount(price, multiplier)
	case DiscountNominal:
		nominal := ratFromFloat(d.Nilai)
		if nominal.Sign() <= 0 {
			return Zero()
		}
		return NewMoneyFromRat(nominal).Min(price)
	default:
		return Zero()
	}
}

// ComputeBundlePrice prices the listed products as one bundle.
func (pc *PricingCalculator) ComputeBundlePrice(b Bundle, products []Product) *BundleResult {
	totalNormal := Zero()
	for _, p := range products {
		totalNormal = totalNormal.Add(p.Price())
	}

	result := &BundleResult{TotalNormal: totalNormal}

	switch b.TipeBundling {
	case BundleHargaTetap:
		result.BundlePrice = Units(b.HargaBundling)
		result.Saving = totalNormal.Subtract(result.BundlePrice)
	case BundleDiskonPersen:
		discount := Zero()
		if multiplier := percentMultiplier(b.DiskonBundling); multiplier != nil {
			discount = pc.CalculateDiscountAmount(totalNormal, multiplier)
		}
		result.BundlePrice = totalNormal.Subtract(discount)
		result.Saving = discount
	default:
		result.BundlePrice = totalNormal.Copy()
		result.Saving = Zero()
	}

	if ratio := result.Saving.Ratio(totalNormal); ratio != nil {
		result.SavingPercent = ratio.Mul(ratio, big.NewRat(100, 1))
	}
	inRange := b.TipeBundling != BundleDiskonPersen || percentInRange(b.DiskonBundling)
	result.IsValid = inRange && result.Saving.IsPositive() && result.BundlePrice.IsPositive()
	return result
}

// ComputeBuyXGetY previews the promotion for a purchase of sampleQuantity
// units of produkX. It returns nil when the inputs are not complete enough to
// produce a number: no trigger product, no free product for a "beda"
// promotion, a non-positive buy or sample quantity, or a free-unit count
// that does not fit in an int64.
func (pc *PricingCalculator) ComputeBuyXGetY(b BuyXGetY, produkX, produkY *Product, sampleQuantity int64) *BuyXGetYResult {
	if b.BuyQuantity <= 0 || sampleQuantity <= 0 || produkX == nil {
		return nil
	}

	var freeUnitPrice *Money
	switch b.TipeBuyGet {
	case BuyGetBeda:
		if produkY == nil {
			return nil
		}
		freeUnitPrice = produkY.Price()
	default:
		freeUnitPrice = produkX.Price()
	}

	getQuantity := b.GetQuantity
	if getQuantity < 0 {
		getQuantity = 0
	}

	multiplier := sampleQuantity / b.BuyQuantity
	if getQuantity > 0 && multiplier > math.MaxInt64/getQuantity {
		return nil
	}
	freeUnits := multiplier * getQuantity
	totalNormal := produkX.Price().MultiplyByInt(sampleQuantity)
	totalDiscount := freeUnitPrice.MultiplyByInt(freeUnits)

	return &BuyXGetYResult{
		SampleQuantity:     sampleQuantity,
		Multiplier:         multiplier,
		FreeUnits:          freeUnits,
		FreeUnitPrice:      freeUnitPrice,
		TotalNormal:        totalNormal,
		TotalDiscount:      totalDiscount,
		TotalAfterDiscount: totalNormal.Subtract(totalDiscount),
		IsValid:            totalDiscount.IsPositive(),
	}
}

// CalculateDiscountAmount calculates the discount amount (not the final price).
// Formula: discountAmount = price * discountMultiplier
func (pc *PricingCalculator) CalculateDiscountAmount(price *Money, discountMultiplier *big.Rat) *Money {
	return price.MultiplyByRat(discountMultiplier)
}

// ClampPercent limits p to (0, MaxPercent]. The second return value is false
// when p carries no discount at all.
func ClampPercent(p float64) (float64, bool) {
	if !(p > minPercent) {
		return 0, false
	}
	if p > MaxPercent {
		return MaxPercent, true
	}
	return p, true
}

// percentMultiplier returns clamp(p)/100, or nil when p yields no discount.
func percentMultiplier(p float64) *big.Rat {
	clamped, ok := ClampPercent(p)
	if !ok {
		return nil
	}
	r := ratFromFloat(clamped)
	return r.Quo(r, big.NewRat(100, 1))
}

// ratFromFloat converts through the shortest decimal form so that 33.3
// becomes 333/10 rather than the nearest binary fraction.
func ratFromFloat(f float64) *big.Rat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return new(big.Rat)
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'f', -1, 64))
	if !ok {
		return new(big.Rat)
	}
	return r
}
