package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Country is the jurisdiction identity. Owned by another bounded context, read-only here.
type Country struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code              string    `gorm:"type:varchar(2);uniqueIndex;not null" json:"code"` // ISO 3166-1 alpha-2
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	TaxYearStartMonth int       `gorm:"not null" json:"tax_year_start_month"` // 1-12
	IsActive          bool      `gorm:"not null" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (c *Country) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
