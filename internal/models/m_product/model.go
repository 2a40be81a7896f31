package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
// The service only writes products when seeding a development database.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation inserting or replacing a catalog product.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{ProductID, Nama, SKU, HargaJual, Tipe, CreatedAt, UpdatedAt},
		[]interface{}{
			data.ProductID,
			data.Nama,
			data.SKU,
			data.HargaJual,
			data.Tipe,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}
