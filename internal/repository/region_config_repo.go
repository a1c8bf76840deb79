package repository

import (
	"context"

	"statutory-engine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegionConfigurationRepository interface {
	ListByCountry(ctx context.Context, countryID uuid.UUID) ([]model.RegionConfiguration, error)
	Create(ctx context.Context, cfg *model.RegionConfiguration) error
}

type regionConfigurationRepository struct {
	db *gorm.DB
}

func NewRegionConfigurationRepository(db *gorm.DB) RegionConfigurationRepository {
	return &regionConfigurationRepository{db: db}
}

// ListByCountry returns every configuration row of the country, active or not.
// Callers decide which rows apply.
func (r *regionConfigurationRepository) ListByCountry(ctx context.Context, countryID uuid.UUID) ([]model.RegionConfiguration, error) {
	var configs []model.RegionConfiguration
	if err := GetDB(ctx, r.db).
		Where("country_id = ?", countryID).
		Order("config_key ASC, created_at ASC").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *regionConfigurationRepository) Create(ctx context.Context, cfg *model.RegionConfiguration) error {
	return translateWriteError(GetDB(ctx, r.db).Create(cfg).Error)
}
