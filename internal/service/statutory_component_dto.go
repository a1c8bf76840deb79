package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"statutory-engine/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CodeInvalidDate is returned when a date field is not YYYY-MM-DD
const CodeInvalidDate = "INVALID_DATE"

// --- Requests ---

type CreateStatutoryComponentRequest struct {
	ComponentName       string           `json:"component_name" binding:"required,max=255"`
	ComponentCode       string           `json:"component_code" binding:"required,component_code"`
	ComponentType       string           `json:"component_type" binding:"required"`
	ContributionType    string           `json:"contribution_type" binding:"required,oneof=EMPLOYEE EMPLOYER BOTH"`
	CalculationBasis    string           `json:"calculation_basis" binding:"required,oneof=GROSS_SALARY BASIC_SALARY CAPPED_AMOUNT FIXED_AMOUNT"`
	EmployeePercentage  *decimal.Decimal `json:"employee_percentage" swaggertype:"string"`
	EmployerPercentage  *decimal.Decimal `json:"employer_percentage" swaggertype:"string"`
	MinimumAmount       *decimal.Decimal `json:"minimum_amount" swaggertype:"string"`
	MaximumAmount       *decimal.Decimal `json:"maximum_amount" swaggertype:"string"`
	WageCeiling         *decimal.Decimal `json:"wage_ceiling" swaggertype:"string"`
	WageFloor           *decimal.Decimal `json:"wage_floor" swaggertype:"string"`
	EffectiveFrom       string           `json:"effective_from" binding:"required,iso_date"` // YYYY-MM-DD
	EffectiveTo         *string          `json:"effective_to" binding:"omitempty,iso_date"`  // YYYY-MM-DD, nullable
	IsMandatory         bool             `json:"is_mandatory"`
	DisplayOrder        int              `json:"display_order"`
	Description         string           `json:"description"`
	RegulatoryReference string           `json:"regulatory_reference" binding:"max=255"`
	IsActive            *bool            `json:"is_active"` // defaults to true
}

// UpdateStatutoryComponentRequest is a partial update. Absent fields keep their
// value; optional fields sent as JSON null are cleared.
type UpdateStatutoryComponentRequest struct {
	ComponentName       *string         `json:"component_name" binding:"omitempty,max=255"`
	ComponentCode       *string         `json:"component_code" binding:"omitempty,component_code"`
	ComponentType       *string         `json:"component_type"`
	ContributionType    *string         `json:"contribution_type"`
	CalculationBasis    *string         `json:"calculation_basis"`
	EmployeePercentage  NullableDecimal `json:"employee_percentage" swaggertype:"string"`
	EmployerPercentage  NullableDecimal `json:"employer_percentage" swaggertype:"string"`
	MinimumAmount       NullableDecimal `json:"minimum_amount" swaggertype:"string"`
	MaximumAmount       NullableDecimal `json:"maximum_amount" swaggertype:"string"`
	WageCeiling         NullableDecimal `json:"wage_ceiling" swaggertype:"string"`
	WageFloor           NullableDecimal `json:"wage_floor" swaggertype:"string"`
	EffectiveFrom       *string         `json:"effective_from" binding:"omitempty,iso_date"`
	EffectiveTo         NullableDate    `json:"effective_to" swaggertype:"string"`
	IsMandatory         *bool           `json:"is_mandatory"`
	DisplayOrder        *int            `json:"display_order"`
	Description         *string         `json:"description"`
	RegulatoryReference *string         `json:"regulatory_reference" binding:"omitempty,max=255"`
	IsActive            *bool           `json:"is_active"`
}

// ListStatutoryComponentsFilter carries the optional list filters
type ListStatutoryComponentsFilter struct {
	Page          int
	PageSize      int
	ComponentType string
	IsActive      *bool
}

// --- Nullable patch fields ---

var jsonNull = []byte("null")

// NullableDecimal distinguishes an absent field from an explicit null
type NullableDecimal struct {
	Set   bool
	Value *decimal.Decimal
}

// SetDecimal returns a NullableDecimal that sets d (nil clears)
func SetDecimal(d *decimal.Decimal) NullableDecimal {
	return NullableDecimal{Set: true, Value: d}
}

func (n *NullableDecimal) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		n.Value = nil
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	n.Value = &d
	return nil
}

func (n NullableDecimal) apply(dst **decimal.Decimal) {
	if n.Set {
		*dst = n.Value
	}
}

// NullableDate distinguishes an absent date from an explicit null
type NullableDate struct {
	Set   bool
	Value *time.Time
}

// SetDate returns a NullableDate that sets t (nil clears)
func SetDate(t *time.Time) NullableDate {
	return NullableDate{Set: true, Value: t}
}

func (n *NullableDate) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return err
	}
	n.Value = &d
	return nil
}

// --- Responses ---

type StatutoryComponentResponse struct {
	ID                  string           `json:"id"`
	CountryID           string           `json:"country_id"`
	ComponentName       string           `json:"component_name"`
	ComponentCode       string           `json:"component_code"`
	ComponentType       string           `json:"component_type"`
	ContributionType    string           `json:"contribution_type"`
	CalculationBasis    string           `json:"calculation_basis"`
	EmployeePercentage  *decimal.Decimal `json:"employee_percentage" swaggertype:"string"`
	EmployerPercentage  *decimal.Decimal `json:"employer_percentage" swaggertype:"string"`
	MinimumAmount       *decimal.Decimal `json:"minimum_amount" swaggertype:"string"`
	MaximumAmount       *decimal.Decimal `json:"maximum_amount" swaggertype:"string"`
	WageCeiling         *decimal.Decimal `json:"wage_ceiling" swaggertype:"string"`
	WageFloor           *decimal.Decimal `json:"wage_floor" swaggertype:"string"`
	EffectiveFrom       string           `json:"effective_from"`
	EffectiveTo         *string          `json:"effective_to"`
	IsMandatory         bool             `json:"is_mandatory"`
	DisplayOrder        int              `json:"display_order"`
	Description         string           `json:"description"`
	RegulatoryReference string           `json:"regulatory_reference"`
	IsActive            bool             `json:"is_active"`
	CreatedAt           string           `json:"created_at"`
	UpdatedAt           string           `json:"updated_at"`
}

type StatutoryComponentPage struct {
	Items    []StatutoryComponentResponse `json:"items"`
	Total    int64                        `json:"total"`
	Page     int                          `json:"page"`
	PageSize int                          `json:"page_size"`
}

type SupersedeResponse struct {
	Superseded StatutoryComponentResponse `json:"superseded"`
	Successor  StatutoryComponentResponse `json:"successor"`
}

// --- Mapping ---

func (r CreateStatutoryComponentRequest) toModel(countryID uuid.UUID) (*model.StatutoryComponent, error) {
	from, err := parseOptionalDate("effective_from", r.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	var to *time.Time
	if r.EffectiveTo != nil && *r.EffectiveTo != "" {
		d, err := parseOptionalDate("effective_to", *r.EffectiveTo)
		if err != nil {
			return nil, err
		}
		to = &d
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &model.StatutoryComponent{
		CountryID:           countryID,
		ComponentName:       strings.TrimSpace(r.ComponentName),
		ComponentCode:       strings.TrimSpace(r.ComponentCode),
		ComponentType:       model.ComponentType(r.ComponentType),
		ContributionType:    model.ContributionType(r.ContributionType),
		CalculationBasis:    model.CalculationBasis(r.CalculationBasis),
		EmployeePercentage:  r.EmployeePercentage,
		EmployerPercentage:  r.EmployerPercentage,
		MinimumAmount:       r.MinimumAmount,
		MaximumAmount:       r.MaximumAmount,
		WageCeiling:         r.WageCeiling,
		WageFloor:           r.WageFloor,
		EffectiveFrom:       from,
		EffectiveTo:         to,
		IsMandatory:         r.IsMandatory,
		DisplayOrder:        r.DisplayOrder,
		Description:         r.Description,
		RegulatoryReference: r.RegulatoryReference,
		IsActive:            isActive,
	}, nil
}

// applyTo overlays the patch on c
func (r UpdateStatutoryComponentRequest) applyTo(c *model.StatutoryComponent) error {
	if r.ComponentName != nil {
		c.ComponentName = strings.TrimSpace(*r.ComponentName)
	}
	if r.ComponentCode != nil {
		c.ComponentCode = strings.TrimSpace(*r.ComponentCode)
	}
	if r.ComponentType != nil {
		c.ComponentType = model.ComponentType(*r.ComponentType)
	}
	if r.ContributionType != nil {
		c.ContributionType = model.ContributionType(*r.ContributionType)
	}
	if r.CalculationBasis != nil {
		c.CalculationBasis = model.CalculationBasis(*r.CalculationBasis)
	}
	r.EmployeePercentage.apply(&c.EmployeePercentage)
	r.EmployerPercentage.apply(&c.EmployerPercentage)
	r.MinimumAmount.apply(&c.MinimumAmount)
	r.MaximumAmount.apply(&c.MaximumAmount)
	r.WageCeiling.apply(&c.WageCeiling)
	r.WageFloor.apply(&c.WageFloor)
	if r.EffectiveFrom != nil {
		from, err := parseOptionalDate("effective_from", *r.EffectiveFrom)
		if err != nil {
			return err
		}
		c.EffectiveFrom = from
	}
	if r.EffectiveTo.Set {
		if r.EffectiveTo.Value == nil {
			c.EffectiveTo = nil
		} else {
			to := model.TruncateDate(*r.EffectiveTo.Value)
			c.EffectiveTo = &to
		}
	}
	if r.IsMandatory != nil {
		c.IsMandatory = *r.IsMandatory
	}
	if r.DisplayOrder != nil {
		c.DisplayOrder = *r.DisplayOrder
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.RegulatoryReference != nil {
		c.RegulatoryReference = *r.RegulatoryReference
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	return nil
}

// parseOptionalDate leaves an empty value as the zero time so the rule engine reports it
func parseOptionalDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	d, err := model.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, model.InvalidRule(CodeInvalidDate, "%s must be a date in YYYY-MM-DD format", field)
	}
	return d, nil
}

func toStatutoryComponentResponse(c model.StatutoryComponent) StatutoryComponentResponse {
	resp := StatutoryComponentResponse{
		ID:                  c.ID.String(),
		CountryID:           c.CountryID.String(),
		ComponentName:       c.ComponentName,
		ComponentCode:       c.ComponentCode,
		ComponentType:       string(c.ComponentType),
		ContributionType:    string(c.ContributionType),
		CalculationBasis:    string(c.CalculationBasis),
		EmployeePercentage:  c.EmployeePercentage,
		EmployerPercentage:  c.EmployerPercentage,
		MinimumAmount:       c.MinimumAmount,
		MaximumAmount:       c.MaximumAmount,
		WageCeiling:         c.WageCeiling,
		WageFloor:           c.WageFloor,
		EffectiveFrom:       model.FormatDate(c.EffectiveFrom),
		IsMandatory:         c.IsMandatory,
		DisplayOrder:        c.DisplayOrder,
		Description:         c.Description,
		RegulatoryReference: c.RegulatoryReference,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           c.UpdatedAt.Format(time.RFC3339),
	}
	if c.EffectiveTo != nil {
		s := model.FormatDate(*c.EffectiveTo)
		resp.EffectiveTo = &s
	}
	return resp
}

func toStatutoryComponentResponses(components []model.StatutoryComponent) []StatutoryComponentResponse {
	res := make([]StatutoryComponentResponse, 0, len(components))
	for _, c := range components {
		res = append(res, toStatutoryComponentResponse(c))
	}
	return res
}
