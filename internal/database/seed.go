package database

import (
	"context"
	"errors"
	"fmt"

	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeder loads development reference data. Existing rows are left untouched.
type Seeder struct {
	countries repository.CountryRepository
	configs   repository.RegionConfigurationRepository
	txManager repository.TransactionManager
	logger    *zap.Logger
}

func NewSeeder(
	countries repository.CountryRepository,
	configs repository.RegionConfigurationRepository,
	txManager repository.TransactionManager,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{countries: countries, configs: configs, txManager: txManager, logger: logger}
}

type seedCountry struct {
	country model.Country
	rules   string // statutory_component_rules document, empty for none
}

var seedCountries = []seedCountry{
	{
		country: model.Country{Code: "IN", Name: "India", TaxYearStartMonth: 4, IsActive: true},
		rules: `{
			"PROFESSIONAL_TAX": {"contribution_type": "EMPLOYEE", "mandatory": true, "calculation_basis": ["GROSS_SALARY", "FIXED_AMOUNT"]},
			"LABOUR_WELFARE_FUND": {"max_employee_percentage": "1", "max_employer_percentage": "2"}
		}`,
	},
	{
		country: model.Country{Code: "PH", Name: "Philippines", TaxYearStartMonth: 1, IsActive: true},
	},
}

// Seed inserts the reference countries and their statutory rule documents
func (s *Seeder) Seed(ctx context.Context) error {
	for _, sc := range seedCountries {
		err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			return s.seedCountry(txCtx, sc)
		})
		if err != nil {
			return fmt.Errorf("failed to seed country %s: %w", sc.country.Code, err)
		}
	}
	return nil
}

func (s *Seeder) seedCountry(ctx context.Context, sc seedCountry) error {
	existing, err := s.countries.FindByCode(ctx, sc.country.Code)
	if err == nil {
		s.logger.Debug("country already seeded", zap.String("country_code", existing.Code))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	country := sc.country
	if err := s.countries.Create(ctx, &country); err != nil {
		return err
	}

	if sc.rules != "" {
		cfg := model.RegionConfiguration{
			CountryID:   country.ID,
			Key:         model.RegionConfigKeyStatutoryRules,
			Value:       datatypes.JSON(sc.rules),
			Description: "Statutory component soft rules",
			IsActive:    true,
		}
		if err := s.configs.Create(ctx, &cfg); err != nil {
			return err
		}
	}

	s.logger.Info("seeded country", zap.String("country_code", country.Code), zap.String("country_id", country.ID.String()))
	return nil
}
