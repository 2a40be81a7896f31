package repo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-engine/internal/app/promotion/domain"
	"github.com/light-bringer/promo-engine/internal/models/m_outbox"
)

func TestOutboxRepo_EnrichEvent(t *testing.T) {
	r := NewOutboxRepo()
	changedAt := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	event, err := r.EnrichEvent(&domain.PromotionStatusChangedEvent{
		PromotionID: "promo-1",
		OldStatus:   domain.StatusAktif,
		NewStatus:   domain.StatusNonaktif,
		ChangedAt:   changedAt,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, "promotion.status_changed", event.EventType)
	assert.Equal(t, "promo-1", event.AggregateID)
	assert.Equal(t, m_outbox.StatusPending, event.Status)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(event.Payload), &payload))
	assert.Equal(t, "nonaktif", payload["new_status"])
	assert.Equal(t, "aktif", payload["old_status"])
}

func TestOutboxRepo_InsertMut(t *testing.T) {
	r := NewOutboxRepo()
	event, err := r.EnrichEvent(&domain.PromotionDeletedEvent{PromotionID: "promo-1"})
	require.NoError(t, err)

	assert.NotNil(t, r.InsertMut(event))
}
