package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/list_events"
	"github.com/light-bringer/promo-engine/internal/models/m_outbox"
	"github.com/light-bringer/promo-engine/internal/pkg/query"
)

// EventsReadModel implements list_events.EventsReadModel for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// ListEvents retrieves outbox events with filtering and the total match count.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, int64, error) {
	base := eventsQuery(req)

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	var total int64
	err := txn.Query(ctx, base.Count().Build()).Do(func(row *spanner.Row) error {
		return row.Column(0, &total)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	stmt := base.Select(m_outbox.Columns...).
		OrderBy(m_outbox.CreatedAt, query.Desc).
		Limit(int64(req.Limit)).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, total, nil
}

func eventsQuery(req *list_events.Request) *query.Builder {
	b := query.From(m_outbox.TableName)
	if req.EventType != nil {
		b = b.Where(query.Eq(m_outbox.EventType, *req.EventType))
	}
	if req.AggregateID != nil {
		b = b.Where(query.Eq(m_outbox.AggregateID, *req.AggregateID))
	}
	if req.Status != nil {
		b = b.Where(query.Eq(m_outbox.Status, *req.Status))
	}
	return b
}
