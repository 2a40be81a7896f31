package m_promotion

// Field name constants for the promotions table.
const (
	TableName = "promotions"

	PromotionID       = "promotion_id"
	Nama              = "nama"
	Kode              = "kode"
	StartDate         = "start_date"
	EndDate           = "end_date"
	MinQuantity       = "min_quantity"
	Status            = "status"
	TipeProdukBerlaku = "tipe_produk_berlaku"
	Deskripsi         = "deskripsi"
	Variant           = "variant"
	DiscountType      = "discount_type"
	DiscountValue     = "discount_value"
	BundleType        = "bundle_type"
	BundlePrice       = "bundle_price"
	BundlePercent     = "bundle_percent"
	BuyGetType        = "buy_get_type"
	BuyQuantity       = "buy_quantity"
	GetQuantity       = "get_quantity"
	Version           = "version"
	CreatedAt         = "created_at"
	UpdatedAt         = "updated_at"
)

// Columns lists every column in the order Data declares them.
var Columns = []string{
	PromotionID,
	Nama,
	Kode,
	StartDate,
	EndDate,
	MinQuantity,
	Status,
	TipeProdukBerlaku,
	Deskripsi,
	Variant,
	DiscountType,
	DiscountValue,
	BundleType,
	BundlePrice,
	BundlePercent,
	BuyGetType,
	BuyQuantity,
	GetQuantity,
	Version,
	CreatedAt,
	UpdatedAt,
}
