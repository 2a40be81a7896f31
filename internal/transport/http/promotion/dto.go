package promotion

import "time"

// PromotionRequest is the wire form of a promotion draft. It is flat: the
// variant field selects which of the variant field groups is read, and the
// other groups are ignored.
type PromotionRequest struct {
	Variant           string  `json:"variant" validate:"required,oneof=diskon_produk bundling buy_x_get_y"`
	Nama              string  `json:"nama" validate:"max=200"`
	Kode              string  `json:"kode" validate:"max=50"`
	TanggalMulai      *string `json:"tanggalMulai" validate:"omitempty,datetime=2006-01-02"`
	TanggalSelesai    *string `json:"tanggalSelesai" validate:"omitempty,datetime=2006-01-02"`
	MinQuantity       int64   `json:"minQuantity"`
	Status            string  `json:"status"`
	TipeProdukBerlaku string  `json:"tipeProdukBerlaku"`
	Deskripsi         string  `json:"deskripsi" validate:"max=2000"`

	// diskon_produk
	Tipe  string  `json:"tipe"`
	Nilai float64 `json:"nilai"`

	// diskon_produk and bundling
	ProdukIDs []string `json:"produkIds" validate:"max=100,dive,required"`

	// bundling
	TipeBundling   string  `json:"tipeBundling"`
	HargaBundling  int64   `json:"hargaBundling"`
	DiskonBundling float64 `json:"diskonBundling"`

	// buy_x_get_y
	TipeBuyGet  string  `json:"tipeBuyGet"`
	ProdukX     string  `json:"produkX"`
	ProdukY     *string `json:"produkY"`
	BuyQuantity int64   `json:"buyQuantity"`
	GetQuantity int64   `json:"getQuantity"`
}

// UpdatePromotionRequest replaces a stored promotion.
type UpdatePromotionRequest struct {
	PromotionRequest
	// Version is the version the client read; zero skips the check.
	Version int64 `json:"version" validate:"gte=0"`
}

// SetStatusRequest enables or disables a promotion.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// LifecycleResponse is the resolved lifecycle status.
type LifecycleResponse struct {
	Phase          string `json:"phase"`
	DaysUntilStart *int64 `json:"daysUntilStart,omitempty"`
	DaysUntilEnd   *int64 `json:"daysUntilEnd,omitempty"`
}

// PromotionResponse is the wire form of a stored promotion. Only the fields
// of its variant are set.
type PromotionResponse struct {
	ID                string  `json:"id"`
	Nama              string  `json:"nama"`
	Kode              string  `json:"kode,omitempty"`
	TanggalMulai      *string `json:"tanggalMulai"`
	TanggalSelesai    *string `json:"tanggalSelesai"`
	MinQuantity       int64   `json:"minQuantity"`
	Status            string  `json:"status"`
	TipeProdukBerlaku string  `json:"tipeProdukBerlaku"`
	Deskripsi         string  `json:"deskripsi"`
	Variant           string  `json:"variant"`

	Tipe           string   `json:"tipe,omitempty"`
	Nilai          *float64 `json:"nilai,omitempty"`
	ProdukIDs      []string `json:"produkIds,omitempty"`
	TipeBundling   string   `json:"tipeBundling,omitempty"`
	HargaBundling  *int64   `json:"hargaBundling,omitempty"`
	DiskonBundling *float64 `json:"diskonBundling,omitempty"`
	TipeBuyGet     string   `json:"tipeBuyGet,omitempty"`
	ProdukX        string   `json:"produkX,omitempty"`
	ProdukY        *string  `json:"produkY,omitempty"`
	BuyQuantity    *int64   `json:"buyQuantity,omitempty"`
	GetQuantity    *int64   `json:"getQuantity,omitempty"`

	Version   int64              `json:"version"`
	CreatedAt *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
	Lifecycle *LifecycleResponse `json:"lifecycle,omitempty"`
}

// ListPromotionsResponse is one page of promotions.
type ListPromotionsResponse struct {
	Promotions    []PromotionResponse `json:"promotions"`
	NextPageToken string              `json:"nextPageToken,omitempty"`
	TotalCount    int64               `json:"totalCount"`
}

// ProductResponse is a catalog product.
type ProductResponse struct {
	ID        string `json:"id"`
	Nama      string `json:"nama"`
	SKU       string `json:"sku"`
	HargaJual int64  `json:"hargaJual"`
	Tipe      string `json:"tipe"`
}

// ValidationResponse is the result of a dry-run validation.
type ValidationResponse struct {
	Valid  bool                   `json:"valid"`
	Errors []ValidationErrorEntry `json:"errors"`
}

// ValidationErrorEntry is one violated rule.
type ValidationErrorEntry struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PreviewResponse is a price preview. Amounts are whole currency units.
type PreviewResponse struct {
	Variant        string            `json:"variant"`
	Outcome        string            `json:"outcome"`
	IsValid        bool              `json:"isValid"`
	SampleQuantity *int64            `json:"sampleQuantity,omitempty"`
	Products       []ProductResponse `json:"products"`
	Discount       *DiscountPreview  `json:"diskonProduk,omitempty"`
	Bundle         *BundlePreview    `json:"bundling,omitempty"`
	BuyXGetY       *BuyXGetYPreview  `json:"buyXGetY,omitempty"`
}

// DiscountLine is the discount on one product.
type DiscountLine struct {
	ProductID          string `json:"productId"`
	HargaNormal        int64  `json:"hargaNormal"`
	Diskon             int64  `json:"diskon"`
	HargaSetelahDiskon int64  `json:"hargaSetelahDiskon"`
}

// DiscountPreview prices a diskon_produk promotion.
type DiscountPreview struct {
	Lines              []DiscountLine `json:"lines"`
	TotalNormal        int64          `json:"totalNormal"`
	TotalDiscount      int64          `json:"totalDiscount"`
	TotalAfterDiscount int64          `json:"totalAfterDiscount"`
}

// BundlePreview prices a bundling promotion.
type BundlePreview struct {
	TotalNormal   int64    `json:"totalNormal"`
	BundlePrice   int64    `json:"bundlePrice"`
	Saving        int64    `json:"saving"`
	SavingPercent *float64 `json:"savingPercent,omitempty"`
}

// BuyXGetYPreview prices a buy_x_get_y promotion for the sample quantity.
type BuyXGetYPreview struct {
	Multiplier         int64 `json:"multiplier"`
	FreeUnits          int64 `json:"freeUnits"`
	FreeUnitPrice      int64 `json:"freeUnitPrice"`
	TotalNormal        int64 `json:"totalNormal"`
	TotalDiscount      int64 `json:"totalDiscount"`
	TotalAfterDiscount int64 `json:"totalAfterDiscount"`
}
