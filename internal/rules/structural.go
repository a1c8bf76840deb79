// Package rules validates statutory components: structural invariants first,
// then per-jurisdiction mandates, then soft rules from region configuration.
package rules

import (
	"regexp"
	"strings"

	"statutory-engine/internal/model"

	"github.com/shopspring/decimal"
)

// Rule codes carried by InvalidComponentRule errors
const (
	CodeNameRequired              = "COMPONENT_NAME_REQUIRED"
	CodeInvalidCode               = "INVALID_COMPONENT_CODE"
	CodeInvalidComponentType      = "INVALID_COMPONENT_TYPE"
	CodeInvalidContributionType   = "INVALID_CONTRIBUTION_TYPE"
	CodeInvalidCalculationBasis   = "INVALID_CALCULATION_BASIS"
	CodeEmployeePercentage        = "INVALID_EMPLOYEE_PERCENTAGE"
	CodeEmployerPercentage        = "INVALID_EMPLOYER_PERCENTAGE"
	CodeUnexpectedEmployeePercent = "UNEXPECTED_EMPLOYEE_PERCENTAGE"
	CodeUnexpectedEmployerPercent = "UNEXPECTED_EMPLOYER_PERCENTAGE"
	CodeNegativeAmount            = "NEGATIVE_AMOUNT"
	CodeAmountOrdering            = "INVALID_AMOUNT_RANGE"
	CodeWageOrdering              = "INVALID_WAGE_RANGE"
	CodeDateOrdering              = "INVALID_EFFECTIVE_RANGE"
	CodeEffectiveFromRequired     = "EFFECTIVE_FROM_REQUIRED"
	CodeNegativeDisplayOrder      = "INVALID_DISPLAY_ORDER"
	CodeDecimalPrecision          = "INVALID_DECIMAL_PRECISION"
)

// Storage scale of numeric columns: percentages are decimal(7,4),
// amounts are decimal(18,2).
const (
	percentageScale = 4
	amountScale     = 2
)

var (
	hundred         = decimal.NewFromInt(100)
	amountLimit     = decimal.New(1, 16)
	componentCodeRe = regexp.MustCompile(`^[A-Z0-9_-]{1,50}$`)
)

// IsValidComponentCode reports whether code is 1-50 chars of A-Z, 0-9, '_' or '-'
func IsValidComponentCode(code string) bool {
	return componentCodeRe.MatchString(code)
}

// ValidateStructure checks the field-level and cross-field invariants of a component.
// It performs no I/O.
func ValidateStructure(c *model.StatutoryComponent) error {
	if strings.TrimSpace(c.ComponentName) == "" {
		return model.InvalidRule(CodeNameRequired, "component name is required")
	}
	if !IsValidComponentCode(c.ComponentCode) {
		return model.InvalidRule(CodeInvalidCode, "component code must be 1-50 characters of A-Z, 0-9, '_' or '-'")
	}
	if !c.ComponentType.IsValid() {
		return model.InvalidRule(CodeInvalidComponentType, "unknown component type '%s'", c.ComponentType)
	}
	if !c.CalculationBasis.IsValid() {
		return model.InvalidRule(CodeInvalidCalculationBasis, "calculation basis must be one of: GROSS_SALARY, BASIC_SALARY, CAPPED_AMOUNT, FIXED_AMOUNT")
	}
	if err := validateContribution(c); err != nil {
		return err
	}
	if err := validateAmounts(c); err != nil {
		return err
	}
	if c.DisplayOrder < 0 {
		return model.InvalidRule(CodeNegativeDisplayOrder, "display order must not be negative")
	}
	return validateEffectiveRange(c)
}

func validateContribution(c *model.StatutoryComponent) error {
	for _, p := range []struct {
		name  string
		value *decimal.Decimal
	}{
		{"employee percentage", c.EmployeePercentage},
		{"employer percentage", c.EmployerPercentage},
	} {
		if p.value != nil && !fitsScale(*p.value, percentageScale) {
			return model.InvalidRule(CodeDecimalPrecision, "%s must have at most %d decimal places", p.name, percentageScale)
		}
	}

	switch c.ContributionType {
	case model.ContributionEmployee:
		if !validPercentage(c.EmployeePercentage) {
			return model.InvalidRule(CodeEmployeePercentage, "employee contribution requires a percentage between 0 and 100")
		}
		if c.EmployerPercentage != nil {
			return model.InvalidRule(CodeUnexpectedEmployerPercent, "employee contribution must not define an employer percentage")
		}
	case model.ContributionEmployer:
		if !validPercentage(c.EmployerPercentage) {
			return model.InvalidRule(CodeEmployerPercentage, "employer contribution requires a percentage between 0 and 100")
		}
		if c.EmployeePercentage != nil {
			return model.InvalidRule(CodeUnexpectedEmployeePercent, "employer contribution must not define an employee percentage")
		}
	case model.ContributionBoth:
		if !validPercentage(c.EmployeePercentage) {
			return model.InvalidRule(CodeEmployeePercentage, "shared contribution requires an employee percentage between 0 and 100")
		}
		if !validPercentage(c.EmployerPercentage) {
			return model.InvalidRule(CodeEmployerPercentage, "shared contribution requires an employer percentage between 0 and 100")
		}
	default:
		return model.InvalidRule(CodeInvalidContributionType, "contribution type must be one of: EMPLOYEE, EMPLOYER, BOTH")
	}
	return nil
}

// validPercentage accepts (0, 100]. Zero counts as no percentage.
func validPercentage(p *decimal.Decimal) bool {
	return p != nil && p.IsPositive() && p.LessThanOrEqual(hundred)
}

func validateAmounts(c *model.StatutoryComponent) error {
	named := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"minimum amount", c.MinimumAmount},
		{"maximum amount", c.MaximumAmount},
		{"wage ceiling", c.WageCeiling},
		{"wage floor", c.WageFloor},
	}
	for _, n := range named {
		if n.value == nil {
			continue
		}
		if n.value.IsNegative() {
			return model.InvalidRule(CodeNegativeAmount, "%s must not be negative", n.name)
		}
		if !fitsScale(*n.value, amountScale) {
			return model.InvalidRule(CodeDecimalPrecision, "%s must have at most %d decimal places", n.name, amountScale)
		}
		if n.value.GreaterThanOrEqual(amountLimit) {
			return model.InvalidRule(CodeDecimalPrecision, "%s must be less than 10^16", n.name)
		}
	}

	if c.MinimumAmount != nil && c.MaximumAmount != nil && !c.MinimumAmount.LessThan(*c.MaximumAmount) {
		return model.InvalidRule(CodeAmountOrdering, "minimum amount must be less than maximum amount")
	}
	if c.WageCeiling != nil && c.WageFloor != nil && !c.WageCeiling.GreaterThan(*c.WageFloor) {
		return model.InvalidRule(CodeWageOrdering, "wage ceiling must be greater than wage floor")
	}
	return nil
}

// fitsScale reports whether d survives rounding to scale decimal places unchanged.
// Trailing zeros beyond the scale are accepted.
func fitsScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Round(scale))
}

func validateEffectiveRange(c *model.StatutoryComponent) error {
	if c.EffectiveFrom.IsZero() {
		return model.InvalidRule(CodeEffectiveFromRequired, "effective-from date is required")
	}
	if c.EffectiveTo != nil && !c.EffectiveFrom.Before(*c.EffectiveTo) {
		return model.InvalidRule(CodeDateOrdering, "effective-from date must precede effective-to date")
	}
	return nil
}
