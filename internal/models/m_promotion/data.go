package m_promotion

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the promotions table.
// Variant columns that do not belong to the stored variant are NULL.
type Data struct {
	PromotionID       string             `spanner:"promotion_id"`
	Nama              string             `spanner:"nama"`
	Kode              spanner.NullString `spanner:"kode"`
	StartDate         spanner.NullDate   `spanner:"start_date"`
	EndDate           spanner.NullDate   `spanner:"end_date"`
	MinQuantity       int64              `spanner:"min_quantity"`
	Status            string             `spanner:"status"`
	TipeProdukBerlaku string             `spanner:"tipe_produk_berlaku"`
	Deskripsi         spanner.NullString `spanner:"deskripsi"`
	Variant           string             `spanner:"variant"`

	DiscountType  spanner.NullString  `spanner:"discount_type"`
	DiscountValue spanner.NullFloat64 `spanner:"discount_value"`

	BundleType    spanner.NullString  `spanner:"bundle_type"`
	BundlePrice   spanner.NullInt64   `spanner:"bundle_price"`
	BundlePercent spanner.NullFloat64 `spanner:"bundle_percent"`

	BuyGetType  spanner.NullString `spanner:"buy_get_type"`
	BuyQuantity spanner.NullInt64  `spanner:"buy_quantity"`
	GetQuantity spanner.NullInt64  `spanner:"get_quantity"`

	Version   int64     `spanner:"version"`
	CreatedAt time.Time `spanner:"created_at"`
	UpdatedAt time.Time `spanner:"updated_at"`
}
