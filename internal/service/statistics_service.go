package service

import (
	"context"
	"time"

	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"

	"github.com/google/uuid"
)

type StatisticsService interface {
	GetComponentStatistics(ctx context.Context, countryID uuid.UUID, asOf time.Time) (model.ComponentStatistics, error)
}

type statisticsService struct {
	stats     repository.StatisticsRepository
	countries repository.CountryRepository
}

func NewStatisticsService(stats repository.StatisticsRepository, countries repository.CountryRepository) StatisticsService {
	return &statisticsService{stats: stats, countries: countries}
}

// GetComponentStatistics counts a country's components per type and those in force on asOf
func (s *statisticsService) GetComponentStatistics(ctx context.Context, countryID uuid.UUID, asOf time.Time) (model.ComponentStatistics, error) {
	if _, err := findCountry(ctx, s.countries, countryID); err != nil {
		return model.ComponentStatistics{}, err
	}

	day := model.TruncateDate(asOf)
	res := model.ComponentStatistics{CountryID: countryID, AsOf: model.FormatDate(day)}

	byType, err := s.stats.CountByType(ctx, countryID)
	if err != nil {
		return model.ComponentStatistics{}, model.StorageFailure(err)
	}
	res.ByType = make([]model.ComponentTypeCount, 0, len(byType))
	for _, row := range byType {
		res.Total += row.Total
		res.Active += row.Active
		res.Mandatory += row.Mandatory
		res.ByType = append(res.ByType, row)
	}

	res.EffectiveCount, err = s.stats.CountEffectiveOn(ctx, countryID, day)
	if err != nil {
		return model.ComponentStatistics{}, model.StorageFailure(err)
	}
	return res, nil
}
