package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateStatutoryComponent    = "CREATE_STATUTORY_COMPONENT"
	ActionUpdateStatutoryComponent    = "UPDATE_STATUTORY_COMPONENT"
	ActionDeleteStatutoryComponent    = "DELETE_STATUTORY_COMPONENT"
	ActionSupersedeStatutoryComponent = "SUPERSEDE_STATUTORY_COMPONENT"
)

// AuditLog tracks Who, What, and When for statutory component changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Actor      string     `gorm:"type:varchar(100);index" json:"actor"` // JWT subject, empty for system writes
	CountryID  *uuid.UUID `gorm:"type:uuid;index" json:"country_id"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:text" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
