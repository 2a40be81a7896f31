package m_promotion

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the promotions table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a promotion. Both timestamps are
// set to the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, append(rowValues(data), spanner.CommitTimestamp, spanner.CommitTimestamp))
}

// ReplaceMut rewrites every column except created_at. A variant change
// nulls the columns of the previous variant, so a partial update is not enough.
func (m *Model) ReplaceMut(data *Data) *spanner.Mutation {
	columns := append(append([]string(nil), Columns[:len(Columns)-2]...), UpdatedAt)
	return spanner.Update(TableName, columns, append(rowValues(data), spanner.CommitTimestamp))
}

// StatusMut updates only the status flag and bumps the version.
func (m *Model) StatusMut(promotionID, status string, version int64) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{PromotionID, Status, Version, UpdatedAt},
		[]interface{}{promotionID, status, version, spanner.CommitTimestamp},
	)
}

// DeleteMut deletes a promotion. Interleaved product links are removed by
// ON DELETE CASCADE.
func (m *Model) DeleteMut(promotionID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{promotionID})
}

// rowValues returns the values of every column up to and including version.
func rowValues(data *Data) []interface{} {
	return []interface{}{
		data.PromotionID,
		data.Nama,
		data.Kode,
		data.StartDate,
		data.EndDate,
		data.MinQuantity,
		data.Status,
		data.TipeProdukBerlaku,
		data.Deskripsi,
		data.Variant,
		data.DiscountType,
		data.DiscountValue,
		data.BundleType,
		data.BundlePrice,
		data.BundlePercent,
		data.BuyGetType,
		data.BuyQuantity,
		data.GetQuantity,
		data.Version,
	}
}
