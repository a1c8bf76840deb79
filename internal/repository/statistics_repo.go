package repository

import (
	"context"
	"fmt"
	"time"

	"statutory-engine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatisticsRepository interface {
	CountByType(ctx context.Context, countryID uuid.UUID) ([]model.ComponentTypeCount, error)
	CountEffectiveOn(ctx context.Context, countryID uuid.UUID, date time.Time) (int64, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) CountByType(ctx context.Context, countryID uuid.UUID) ([]model.ComponentTypeCount, error) {
	var counts []model.ComponentTypeCount
	if err := GetDB(ctx, r.db).Model(&model.StatutoryComponent{}).
		Select("component_type, COUNT(*) as total, " +
			"SUM(CASE WHEN is_active THEN 1 ELSE 0 END) as active, " +
			"SUM(CASE WHEN is_mandatory THEN 1 ELSE 0 END) as mandatory").
		Where("country_id = ?", countryID).
		Group("component_type").
		Order("component_type ASC").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count components by type: %w", err)
	}
	return counts, nil
}

func (r *statisticsRepository) CountEffectiveOn(ctx context.Context, countryID uuid.UUID, date time.Time) (int64, error) {
	day := model.TruncateDate(date)

	var count int64
	if err := GetDB(ctx, r.db).Model(&model.StatutoryComponent{}).
		Where("country_id = ? AND is_active = ?", countryID, true).
		Where("effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", day, day).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count effective components: %w", err)
	}
	return count, nil
}
