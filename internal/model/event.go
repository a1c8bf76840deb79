package model

import (
	"time"

	"github.com/google/uuid"
)

// ComponentEventType names a change on the statutory component feed
type ComponentEventType string

const (
	EventComponentCreated    ComponentEventType = "statutory_component.created"
	EventComponentUpdated    ComponentEventType = "statutory_component.updated"
	EventComponentDeleted    ComponentEventType = "statutory_component.deleted"
	EventComponentSuperseded ComponentEventType = "statutory_component.superseded"
)

// ComponentEvent is broadcast to connected admin clients after a committed write
type ComponentEvent struct {
	Type          ComponentEventType `json:"type"`
	CountryID     uuid.UUID          `json:"country_id"`
	ComponentID   uuid.UUID          `json:"component_id"`
	ComponentCode string             `json:"component_code"`
	Actor         string             `json:"actor,omitempty"`
	OccurredAt    time.Time          `json:"occurred_at"`
}
