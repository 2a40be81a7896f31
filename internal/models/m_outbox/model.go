package m_outbox

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an outbox event.
// created_at is set to the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.EventID,
		data.EventType,
		data.AggregateID,
		data.Payload,
		data.Status,
		spanner.CommitTimestamp,
		data.ProcessedAt,
		data.RetryCount,
		data.ErrorMessage,
	})
}
