package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// PromotionCreatedEvent is emitted when a promotion is created.
type PromotionCreatedEvent struct {
	PromotionID string          `json:"promotion_id"`
	Nama        string          `json:"nama"`
	Variant     VariantKind     `json:"variant"`
	Status      PromotionStatus `json:"status"`
	ProdukIDs   []string        `json:"produk_ids"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (e *PromotionCreatedEvent) EventType() string {
	return "promotion.created"
}

func (e *PromotionCreatedEvent) AggregateID() string {
	return e.PromotionID
}

// PromotionUpdatedEvent is emitted when a promotion configuration is replaced.
type PromotionUpdatedEvent struct {
	PromotionID string      `json:"promotion_id"`
	Nama        string      `json:"nama"`
	Variant     VariantKind `json:"variant"`
	ProdukIDs   []string    `json:"produk_ids"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (e *PromotionUpdatedEvent) EventType() string {
	return "promotion.updated"
}

func (e *PromotionUpdatedEvent) AggregateID() string {
	return e.PromotionID
}

// PromotionStatusChangedEvent is emitted when a promotion is enabled or disabled.
type PromotionStatusChangedEvent struct {
	PromotionID string          `json:"promotion_id"`
	OldStatus   PromotionStatus `json:"old_status"`
	NewStatus   PromotionStatus `json:"new_status"`
	ChangedAt   time.Time       `json:"changed_at"`
}

func (e *PromotionStatusChangedEvent) EventType() string {
	return "promotion.status_changed"
}

func (e *PromotionStatusChangedEvent) AggregateID() string {
	return e.PromotionID
}

// PromotionDeletedEvent is emitted when a promotion is removed.
type PromotionDeletedEvent struct {
	PromotionID string    `json:"promotion_id"`
	DeletedAt   time.Time `json:"deleted_at"`
}

func (e *PromotionDeletedEvent) EventType() string {
	return "promotion.deleted"
}

func (e *PromotionDeletedEvent) AggregateID() string {
	return e.PromotionID
}
