package model

import (
	"github.com/google/uuid"
)

// ComponentStatistics summarizes a country's statutory component configuration
type ComponentStatistics struct {
	CountryID      uuid.UUID            `json:"country_id"`
	AsOf           string               `json:"as_of"` // YYYY-MM-DD
	Total          int                  `json:"total"`
	Active         int                  `json:"active"`
	Mandatory      int                  `json:"mandatory"`
	EffectiveCount int64                `json:"effective_count"` // components resolving on AsOf
	ByType         []ComponentTypeCount `json:"by_type"`
}

// ComponentTypeCount is one row of the per-type breakdown
type ComponentTypeCount struct {
	ComponentType ComponentType `json:"component_type"`
	Total         int           `json:"total"`
	Active        int           `json:"active"`
	Mandatory     int           `json:"mandatory"`
}
