package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/list_events"
)

func TestEventsQuery(t *testing.T) {
	eventType := "promotion.created"
	status := "pending"

	stmt := eventsQuery(&list_events.Request{EventType: &eventType, Status: &status}).
		Select("event_id").
		Limit(10).
		Build()

	assert.Equal(t, "SELECT event_id FROM outbox_events WHERE event_type = @p0 AND status = @p1 LIMIT @limit", stmt.SQL)
	assert.Equal(t, "promotion.created", stmt.Params["p0"])
	assert.Equal(t, int64(10), stmt.Params["limit"])
}
