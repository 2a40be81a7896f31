package domain

// ProductType distinguishes loose goods sold by weight from counted units.
type ProductType string

const (
	ProductTypeCurah  ProductType = "curah"
	ProductTypeSatuan ProductType = "satuan"
)

// Product is the catalog view the engine prices against.
// It is owned by the product catalog and never modified here.
type Product struct {
	ID        string
	Nama      string
	SKU       string
	HargaJual int64 // whole currency units
	Tipe      ProductType
}

// Price returns the selling price as Money.
func (p Product) Price() *Money {
	return Units(p.HargaJual)
}

// ProductIndex builds a lookup map keyed by product ID.
func ProductIndex(products []Product) map[string]Product {
	index := make(map[string]Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}
