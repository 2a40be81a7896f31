package m_product

// Data represents the columns of the products table the engine reads.
type Data struct {
	ProductID string `spanner:"product_id"`
	Nama      string `spanner:"nama"`
	SKU       string `spanner:"sku"`
	HargaJual int64  `spanner:"harga_jual"`
	Tipe      string `spanner:"tipe"`
}
