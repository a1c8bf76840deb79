package service

import (
	"context"
	"errors"

	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CountryResponse struct {
	ID                string `json:"id"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	TaxYearStartMonth int    `json:"tax_year_start_month"`
	IsActive          bool   `json:"is_active"`
}

type RegionConfigurationResponse struct {
	ID          string      `json:"id"`
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	Description string      `json:"description"`
	IsActive    bool        `json:"is_active"`
}

// CountryService exposes the read-only country directory and its region configuration
type CountryService interface {
	ListCountries(ctx context.Context, activeOnly bool) ([]CountryResponse, error)
	GetCountry(ctx context.Context, id uuid.UUID) (CountryResponse, error)
	ListRegionConfigurations(ctx context.Context, countryID uuid.UUID) ([]RegionConfigurationResponse, error)
}

type countryService struct {
	countries repository.CountryRepository
	configs   repository.RegionConfigurationRepository
}

func NewCountryService(countries repository.CountryRepository, configs repository.RegionConfigurationRepository) CountryService {
	return &countryService{countries: countries, configs: configs}
}

func (s *countryService) ListCountries(ctx context.Context, activeOnly bool) ([]CountryResponse, error) {
	countries, err := s.countries.List(ctx, activeOnly)
	if err != nil {
		return nil, model.StorageFailure(err)
	}
	res := make([]CountryResponse, 0, len(countries))
	for _, c := range countries {
		res = append(res, toCountryResponse(c))
	}
	return res, nil
}

func (s *countryService) GetCountry(ctx context.Context, id uuid.UUID) (CountryResponse, error) {
	country, err := findCountry(ctx, s.countries, id)
	if err != nil {
		return CountryResponse{}, err
	}
	return toCountryResponse(*country), nil
}

// findCountry maps a missing country to NotFound and anything else to StorageFailure
func findCountry(ctx context.Context, countries repository.CountryRepository, id uuid.UUID) (*model.Country, error) {
	country, err := countries.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.NotFound("country")
	}
	if err != nil {
		return nil, model.StorageFailure(err)
	}
	return country, nil
}

func (s *countryService) ListRegionConfigurations(ctx context.Context, countryID uuid.UUID) ([]RegionConfigurationResponse, error) {
	if _, err := s.GetCountry(ctx, countryID); err != nil {
		return nil, err
	}
	configs, err := s.configs.ListByCountry(ctx, countryID)
	if err != nil {
		return nil, model.StorageFailure(err)
	}

	res := make([]RegionConfigurationResponse, 0, len(configs))
	for _, c := range configs {
		// Value is an open document; it is passed through as raw JSON.
		var value interface{} = c.Value
		if len(c.Value) == 0 {
			value = nil
		}
		res = append(res, RegionConfigurationResponse{
			ID:          c.ID.String(),
			Key:         c.Key,
			Value:       value,
			Description: c.Description,
			IsActive:    c.IsActive,
		})
	}
	return res, nil
}

func toCountryResponse(c model.Country) CountryResponse {
	return CountryResponse{
		ID:                c.ID.String(),
		Code:              c.Code,
		Name:              c.Name,
		TaxYearStartMonth: c.TaxYearStartMonth,
		IsActive:          c.IsActive,
	}
}
