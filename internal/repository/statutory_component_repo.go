package repository

import (
	"context"
	"errors"
	"time"

	"statutory-engine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// componentOrder is the canonical listing order. id makes it total.
const componentOrder = "display_order ASC, component_name ASC, id ASC"

// StatutoryComponentFilter narrows a paginated listing
type StatutoryComponentFilter struct {
	CountryID     uuid.UUID
	ComponentType *model.ComponentType
	IsActive      *bool
	Page          int
	PageSize      int
}

type StatutoryComponentRepository interface {
	// FindByCode returns nil, nil when the country has no component with that code.
	FindByCode(ctx context.Context, countryID uuid.UUID, code string) (*model.StatutoryComponent, error)
	Create(ctx context.Context, component *model.StatutoryComponent) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StatutoryComponent, error)
	Update(ctx context.Context, component *model.StatutoryComponent) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter StatutoryComponentFilter) ([]model.StatutoryComponent, int64, error)
	ListByType(ctx context.Context, countryID uuid.UUID, componentType model.ComponentType) ([]model.StatutoryComponent, error)
	ListActiveOn(ctx context.Context, countryID uuid.UUID, date time.Time) ([]model.StatutoryComponent, error)
}

type statutoryComponentRepository struct {
	db *gorm.DB
}

func NewStatutoryComponentRepository(db *gorm.DB) StatutoryComponentRepository {
	return &statutoryComponentRepository{db: db}
}

func (r *statutoryComponentRepository) FindByCode(ctx context.Context, countryID uuid.UUID, code string) (*model.StatutoryComponent, error) {
	var component model.StatutoryComponent
	err := GetDB(ctx, r.db).
		Where("country_id = ? AND component_code = ?", countryID, code).
		First(&component).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *statutoryComponentRepository) Create(ctx context.Context, component *model.StatutoryComponent) error {
	return translateWriteError(GetDB(ctx, r.db).Create(component).Error)
}

func (r *statutoryComponentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StatutoryComponent, error) {
	var component model.StatutoryComponent
	if err := GetDB(ctx, r.db).First(&component, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &component, nil
}

// Update overwrites every column, so cleared optional fields become NULL
func (r *statutoryComponentRepository) Update(ctx context.Context, component *model.StatutoryComponent) error {
	return translateWriteError(GetDB(ctx, r.db).Save(component).Error)
}

// Delete removes the row for good. A missing row yields gorm.ErrRecordNotFound.
func (r *statutoryComponentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.StatutoryComponent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *statutoryComponentRepository) List(ctx context.Context, filter StatutoryComponentFilter) ([]model.StatutoryComponent, int64, error) {
	var components []model.StatutoryComponent
	var total int64

	query := GetDB(ctx, r.db).Model(&model.StatutoryComponent{}).Where("country_id = ?", filter.CountryID)
	if filter.ComponentType != nil {
		query = query.Where("component_type = ?", *filter.ComponentType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order(componentOrder).Offset(offset).Limit(filter.PageSize).Find(&components).Error; err != nil {
		return nil, 0, err
	}

	return components, total, nil
}

func (r *statutoryComponentRepository) ListByType(ctx context.Context, countryID uuid.UUID, componentType model.ComponentType) ([]model.StatutoryComponent, error) {
	var components []model.StatutoryComponent
	if err := GetDB(ctx, r.db).
		Where("country_id = ? AND component_type = ? AND is_active = ?", countryID, componentType, true).
		Order(componentOrder).
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// ListActiveOn resolves the components in force on date:
// active, effective_from <= date and (effective_to IS NULL OR effective_to >= date).
func (r *statutoryComponentRepository) ListActiveOn(ctx context.Context, countryID uuid.UUID, date time.Time) ([]model.StatutoryComponent, error) {
	day := model.TruncateDate(date)

	var components []model.StatutoryComponent
	if err := GetDB(ctx, r.db).
		Where("country_id = ? AND is_active = ?", countryID, true).
		Where("effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", day, day).
		Order(componentOrder).
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}
