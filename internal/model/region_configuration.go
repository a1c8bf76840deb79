package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RegionConfigKeyStatutoryRules is the only key the rule engine reads.
const RegionConfigKeyStatutoryRules = "statutory_component_rules"

// RegionConfiguration is a loosely-typed per-country setting
type RegionConfiguration struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CountryID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"country_id"`
	Key         string         `gorm:"column:config_key;type:varchar(100);not null;index" json:"key"`
	Value       datatypes.JSON `json:"value"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (r *RegionConfiguration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
