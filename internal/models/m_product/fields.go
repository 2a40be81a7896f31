package m_product

// Field name constants for the products table owned by the catalog.
const (
	TableName = "products"

	ProductID = "product_id"
	Nama      = "nama"
	SKU       = "sku"
	HargaJual = "harga_jual"
	Tipe      = "tipe"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// Columns lists the columns the catalog reads.
var Columns = []string{ProductID, Nama, SKU, HargaJual, Tipe}
