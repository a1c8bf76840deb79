package rules

import (
	"encoding/json"
	"fmt"
	"slices"

	"statutory-engine/internal/model"

	"github.com/shopspring/decimal"
)

const (
	CodeSoftContributionType = "REGION_CONTRIBUTION_TYPE"
	CodeSoftEmployeeCap      = "REGION_EMPLOYEE_PERCENTAGE_CAP"
	CodeSoftEmployerCap      = "REGION_EMPLOYER_PERCENTAGE_CAP"
	CodeSoftMandatory        = "REGION_MANDATORY_COMPONENT"
	CodeSoftCalculationBasis = "REGION_CALCULATION_BASIS"
)

// SoftRule is the per-component-type shape recognized inside the
// statutory_component_rules region configuration. Every field is optional.
type SoftRule struct {
	ContributionType      model.ContributionType   `json:"contribution_type,omitempty"`
	MaxEmployeePercentage *decimal.Decimal         `json:"max_employee_percentage,omitempty"`
	MaxEmployerPercentage *decimal.Decimal         `json:"max_employer_percentage,omitempty"`
	Mandatory             *bool                    `json:"mandatory,omitempty"`
	CalculationBasis      []model.CalculationBasis `json:"calculation_basis,omitempty"`
}

// SoftRules are keyed by component type
type SoftRules map[model.ComponentType]SoftRule

// ParseSoftRules extracts the rules document from a country's region configuration.
// Inactive rows and other keys are ignored; no matching row yields empty rules.
func ParseSoftRules(configs []model.RegionConfiguration) (SoftRules, error) {
	rules := SoftRules{}
	for _, cfg := range configs {
		if !cfg.IsActive || cfg.Key != model.RegionConfigKeyStatutoryRules || len(cfg.Value) == 0 {
			continue
		}
		var doc SoftRules
		if err := json.Unmarshal(cfg.Value, &doc); err != nil {
			return SoftRules{}, fmt.Errorf("region configuration %s: %w", cfg.ID, err)
		}
		for t, rule := range doc {
			rules[t] = rule
		}
	}
	return rules, nil
}

// Validate applies the soft rule for the component's type, if any
func (s SoftRules) Validate(c *model.StatutoryComponent) error {
	rule, ok := s[c.ComponentType]
	if !ok {
		return nil
	}

	if rule.ContributionType != "" && c.ContributionType != rule.ContributionType {
		return model.InvalidRule(CodeSoftContributionType, "region rules require contribution type %s for %s", rule.ContributionType, c.ComponentType)
	}
	if rule.MaxEmployeePercentage != nil && c.EmployeePercentage != nil && c.EmployeePercentage.GreaterThan(*rule.MaxEmployeePercentage) {
		return model.InvalidRule(CodeSoftEmployeeCap, "region rules cap the employee percentage for %s at %s%%", c.ComponentType, rule.MaxEmployeePercentage.String())
	}
	if rule.MaxEmployerPercentage != nil && c.EmployerPercentage != nil && c.EmployerPercentage.GreaterThan(*rule.MaxEmployerPercentage) {
		return model.InvalidRule(CodeSoftEmployerCap, "region rules cap the employer percentage for %s at %s%%", c.ComponentType, rule.MaxEmployerPercentage.String())
	}
	if rule.Mandatory != nil && *rule.Mandatory && !c.IsMandatory {
		return model.InvalidRule(CodeSoftMandatory, "region rules require %s components to be mandatory", c.ComponentType)
	}
	if len(rule.CalculationBasis) > 0 && !slices.Contains(rule.CalculationBasis, c.CalculationBasis) {
		return model.InvalidRule(CodeSoftCalculationBasis, "region rules do not allow calculation basis %s for %s", c.CalculationBasis, c.ComponentType)
	}
	return nil
}
