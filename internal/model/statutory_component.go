package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComponentType is the closed set of statutory component kinds
type ComponentType string

const (
	ComponentTypeProvidentFund     ComponentType = "PROVIDENT_FUND"
	ComponentTypePensionFund       ComponentType = "PENSION_FUND"
	ComponentTypeSocialInsurance   ComponentType = "SOCIAL_INSURANCE" // ESI and equivalents
	ComponentTypeSocialSecurity    ComponentType = "SOCIAL_SECURITY"
	ComponentTypeHealthFund        ComponentType = "HEALTH_FUND"
	ComponentTypeHousingFund       ComponentType = "HOUSING_FUND"
	ComponentTypeProfessionalTax   ComponentType = "PROFESSIONAL_TAX"
	ComponentTypeLabourWelfareFund ComponentType = "LABOUR_WELFARE_FUND"
	ComponentTypeTaxWithholding    ComponentType = "TAX_WITHHOLDING"
)

// ComponentTypes lists every known component type
var ComponentTypes = []ComponentType{
	ComponentTypeProvidentFund,
	ComponentTypePensionFund,
	ComponentTypeSocialInsurance,
	ComponentTypeSocialSecurity,
	ComponentTypeHealthFund,
	ComponentTypeHousingFund,
	ComponentTypeProfessionalTax,
	ComponentTypeLabourWelfareFund,
	ComponentTypeTaxWithholding,
}

func (t ComponentType) IsValid() bool {
	for _, known := range ComponentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ContributionType says who funds the component
type ContributionType string

const (
	ContributionEmployee ContributionType = "EMPLOYEE"
	ContributionEmployer ContributionType = "EMPLOYER"
	ContributionBoth     ContributionType = "BOTH"
)

func (c ContributionType) IsValid() bool {
	switch c {
	case ContributionEmployee, ContributionEmployer, ContributionBoth:
		return true
	}
	return false
}

// CalculationBasis is the salary quantity a percentage applies to
type CalculationBasis string

const (
	BasisGrossSalary  CalculationBasis = "GROSS_SALARY"
	BasisBasicSalary  CalculationBasis = "BASIC_SALARY"
	BasisCappedAmount CalculationBasis = "CAPPED_AMOUNT"
	BasisFixedAmount  CalculationBasis = "FIXED_AMOUNT"
)

func (b CalculationBasis) IsValid() bool {
	switch b {
	case BasisGrossSalary, BasisBasicSalary, BasisCappedAmount, BasisFixedAmount:
		return true
	}
	return false
}

// StatutoryComponent is an effective-dated payroll deduction/contribution rule
type StatutoryComponent struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CountryID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_statutory_component_country_code,priority:1" json:"country_id"`
	ComponentName       string           `gorm:"type:varchar(255);not null" json:"component_name"`
	ComponentCode       string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_statutory_component_country_code,priority:2" json:"component_code"`
	ComponentType       ComponentType    `gorm:"type:varchar(50);not null;index" json:"component_type"`
	ContributionType    ContributionType `gorm:"type:varchar(20);not null" json:"contribution_type"`
	CalculationBasis    CalculationBasis `gorm:"type:varchar(20);not null" json:"calculation_basis"`
	EmployeePercentage  *decimal.Decimal `gorm:"type:decimal(7,4)" json:"employee_percentage"`
	EmployerPercentage  *decimal.Decimal `gorm:"type:decimal(7,4)" json:"employer_percentage"`
	MinimumAmount       *decimal.Decimal `gorm:"type:decimal(18,2)" json:"minimum_amount"`
	MaximumAmount       *decimal.Decimal `gorm:"type:decimal(18,2)" json:"maximum_amount"`
	WageCeiling         *decimal.Decimal `gorm:"type:decimal(18,2)" json:"wage_ceiling"`
	WageFloor           *decimal.Decimal `gorm:"type:decimal(18,2)" json:"wage_floor"`
	EffectiveFrom       time.Time        `gorm:"type:date;not null;index" json:"effective_from"`
	EffectiveTo         *time.Time       `gorm:"type:date;index" json:"effective_to"` // nil = open-ended
	IsMandatory         bool             `gorm:"not null" json:"is_mandatory"`
	DisplayOrder        int              `gorm:"not null" json:"display_order"`
	Description         string           `gorm:"type:text" json:"description"`
	RegulatoryReference string           `gorm:"type:varchar(255)" json:"regulatory_reference"`
	IsActive            bool             `gorm:"not null;index" json:"is_active"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (c *StatutoryComponent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// EffectiveOn reports whether the component resolves on the given date
func (c *StatutoryComponent) EffectiveOn(date time.Time) bool {
	d := TruncateDate(date)
	if !c.IsActive || c.EffectiveFrom.After(d) {
		return false
	}
	return c.EffectiveTo == nil || !c.EffectiveTo.Before(d)
}

// Clone returns a deep copy so a patch can be merged without touching the loaded record
func (c StatutoryComponent) Clone() StatutoryComponent {
	out := c
	out.EmployeePercentage = cloneDecimal(c.EmployeePercentage)
	out.EmployerPercentage = cloneDecimal(c.EmployerPercentage)
	out.MinimumAmount = cloneDecimal(c.MinimumAmount)
	out.MaximumAmount = cloneDecimal(c.MaximumAmount)
	out.WageCeiling = cloneDecimal(c.WageCeiling)
	out.WageFloor = cloneDecimal(c.WageFloor)
	if c.EffectiveTo != nil {
		to := *c.EffectiveTo
		out.EffectiveTo = &to
	}
	return out
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
