// Package m_promotion_product maps the promotion_products table, which links
// a promotion to the products it references. It is interleaved in promotions.
package m_promotion_product

import (
	"cloud.google.com/go/spanner"
)

// Field name constants for the promotion_products table.
const (
	TableName = "promotion_products"

	PromotionID = "promotion_id"
	Position    = "position"
	ProductID   = "product_id"
	Role        = "role"
)

// Roles a linked product plays in its promotion.
const (
	RoleItem = "item" // diskon_produk and bundling products
	RoleX    = "x"    // buy_x_get_y trigger product
	RoleY    = "y"    // buy_x_get_y free product when it differs
)

// Data represents one row of promotion_products.
type Data struct {
	PromotionID string `spanner:"promotion_id"`
	Position    int64  `spanner:"position"`
	ProductID   string `spanner:"product_id"`
	Role        string `spanner:"role"`
}

// Model provides a facade for type-safe operations on promotion_products.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for one link row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{PromotionID, Position, ProductID, Role},
		[]interface{}{data.PromotionID, data.Position, data.ProductID, data.Role},
	)
}

// DeleteAllMut removes every link of a promotion.
func (m *Model) DeleteAllMut(promotionID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{promotionID}.AsPrefix())
}
