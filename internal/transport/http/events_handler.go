package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/list_events"
	"github.com/light-bringer/promo-engine/internal/pkg/logger"
	"github.com/light-bringer/promo-engine/internal/transport/http/responses"
)

// EventsHandler handles HTTP requests for outbox events.
type EventsHandler struct {
	listEvents *list_events.Query
	log        *logger.Logger
}

// NewEventsHandler creates a new HTTP events handler.
func NewEventsHandler(listEvents *list_events.Query, log *logger.Logger) *EventsHandler {
	return &EventsHandler{
		listEvents: listEvents,
		log:        log,
	}
}

// Event represents a domain event in the HTTP response.
type Event struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	AggregateID  string          `json:"aggregate_id"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Status       string          `json:"status"`
	RetryCount   int64           `json:"retry_count"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    string          `json:"created_at"`
	ProcessedAt  *string         `json:"processed_at,omitempty"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
}

// ServeHTTP handles GET /api/v1/events requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse query parameters
	query := r.URL.Query()
	req := &list_events.Request{}

	if eventType := query.Get("event_type"); eventType != "" {
		req.EventType = &eventType
	}

	if aggregateID := query.Get("aggregate_id"); aggregateID != "" {
		req.AggregateID = &aggregateID
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	rows, total, err := h.listEvents.Execute(r.Context(), req)
	if err != nil {
		responses.WriteError(r.Context(), h.log, w, err)
		return
	}

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		event := Event{
			EventID:     row.EventID,
			EventType:   row.EventType,
			AggregateID: row.AggregateID,
			Status:      row.Status,
			RetryCount:  row.RetryCount,
			CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		}
		if row.Payload.Valid {
			if payload, err := json.Marshal(row.Payload.Value); err == nil {
				event.Payload = payload
			}
		}
		if row.ErrorMessage.Valid {
			msg := row.ErrorMessage.StringVal
			event.ErrorMessage = &msg
		}
		if row.ProcessedAt.Valid {
			processedAt := row.ProcessedAt.Time.Format(time.RFC3339)
			event.ProcessedAt = &processedAt
		}
		events = append(events, event)
	}

	responses.WriteSuccess(w, ListEventsResponse{
		Events:     events,
		TotalCount: total,
	})
}
