package repository

import (
	"context"
	"strings"

	"statutory-engine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CountryRepository is the read side of the country directory.
// Create exists for reference data seeding only.
type CountryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Country, error)
	FindByCode(ctx context.Context, code string) (*model.Country, error)
	List(ctx context.Context, activeOnly bool) ([]model.Country, error)
	Create(ctx context.Context, country *model.Country) error
}

type countryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Country, error) {
	var country model.Country
	if err := GetDB(ctx, r.db).First(&country, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) FindByCode(ctx context.Context, code string) (*model.Country, error) {
	var country model.Country
	if err := GetDB(ctx, r.db).First(&country, "code = ?", strings.ToUpper(code)).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) List(ctx context.Context, activeOnly bool) ([]model.Country, error) {
	var countries []model.Country
	query := GetDB(ctx, r.db)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("code ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *countryRepository) Create(ctx context.Context, country *model.Country) error {
	return translateWriteError(GetDB(ctx, r.db).Create(country).Error)
}
