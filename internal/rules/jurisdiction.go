package rules

import (
	"sort"
	"strings"
	"sync"

	"statutory-engine/internal/model"

	"github.com/shopspring/decimal"
)

const (
	CodeTypeNotAllowed      = "COMPONENT_TYPE_NOT_ALLOWED"
	CodeContributionMandate = "CONTRIBUTION_TYPE_MANDATE"
	CodeEmployeeRateMandate = "EMPLOYEE_PERCENTAGE_MANDATE"
	CodeEmployerRateMandate = "EMPLOYER_PERCENTAGE_MANDATE"
)

// RuleFunc is a jurisdiction mandate for one (country, component type) pair
type RuleFunc func(c *model.StatutoryComponent) error

// RuleKey identifies the jurisdiction a rule applies to
type RuleKey struct {
	CountryCode   string
	ComponentType model.ComponentType
}

// Registry maps (ISO code, component type) to mandates and restricts the
// component types a country may define. Safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	rules        map[RuleKey][]RuleFunc
	allowedTypes map[string]map[model.ComponentType]bool
}

// NewRegistry returns an empty registry: every pair passes
func NewRegistry() *Registry {
	return &Registry{
		rules:        make(map[RuleKey][]RuleFunc),
		allowedTypes: make(map[string]map[model.ComponentType]bool),
	}
}

// Register adds mandates for a country/type pair. Existing mandates are kept.
func (r *Registry) Register(countryCode string, componentType model.ComponentType, fns ...RuleFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := RuleKey{CountryCode: normalizeCountry(countryCode), ComponentType: componentType}
	r.rules[key] = append(r.rules[key], fns...)
}

// RestrictTypes limits the component types a country may define.
// Countries never restricted accept the whole closed set.
func (r *Registry) RestrictTypes(countryCode string, types ...model.ComponentType) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := normalizeCountry(countryCode)
	set, ok := r.allowedTypes[code]
	if !ok {
		set = make(map[model.ComponentType]bool, len(types))
		r.allowedTypes[code] = set
	}
	for _, t := range types {
		set[t] = true
	}
}

// Keys returns the registered pairs in a stable order
func (r *Registry) Keys() []RuleKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]RuleKey, 0, len(r.rules))
	for k := range r.rules {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CountryCode != keys[j].CountryCode {
			return keys[i].CountryCode < keys[j].CountryCode
		}
		return keys[i].ComponentType < keys[j].ComponentType
	})
	return keys
}

// Validate applies the country's type restriction and every mandate registered
// for the component's type. Unknown pairs pass.
func (r *Registry) Validate(countryCode string, c *model.StatutoryComponent) error {
	code := normalizeCountry(countryCode)

	r.mu.RLock()
	allowed, restricted := r.allowedTypes[code]
	fns := r.rules[RuleKey{CountryCode: code, ComponentType: c.ComponentType}]
	r.mu.RUnlock()

	if restricted && !allowed[c.ComponentType] {
		return model.InvalidRule(CodeTypeNotAllowed, "component type '%s' is not defined for country %s", c.ComponentType, code)
	}
	for _, fn := range fns {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

func normalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RequireContributionType mandates the funding shape of a component
func RequireContributionType(label string, want model.ContributionType) RuleFunc {
	return func(c *model.StatutoryComponent) error {
		if c.ContributionType != want {
			return model.InvalidRule(CodeContributionMandate, "%s requires contribution type %s", label, want)
		}
		return nil
	}
}

// RequireEmployeePercentage mandates an exact employee percentage
func RequireEmployeePercentage(label string, want decimal.Decimal) RuleFunc {
	return func(c *model.StatutoryComponent) error {
		if c.EmployeePercentage == nil || !c.EmployeePercentage.Equal(want) {
			return model.InvalidRule(CodeEmployeeRateMandate, "%s requires an employee contribution of exactly %s%%", label, want.String())
		}
		return nil
	}
}

// RequireEmployerPercentage mandates an exact employer percentage
func RequireEmployerPercentage(label string, want decimal.Decimal) RuleFunc {
	return func(c *model.StatutoryComponent) error {
		if c.EmployerPercentage == nil || !c.EmployerPercentage.Equal(want) {
			return model.InvalidRule(CodeEmployerRateMandate, "%s requires an employer contribution of exactly %s%%", label, want.String())
		}
		return nil
	}
}

// DefaultRegistry returns the built-in jurisdiction mandates
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.RestrictTypes("IN",
		model.ComponentTypeProvidentFund,
		model.ComponentTypePensionFund,
		model.ComponentTypeSocialInsurance,
		model.ComponentTypeProfessionalTax,
		model.ComponentTypeLabourWelfareFund,
		model.ComponentTypeTaxWithholding,
	)
	r.Register("IN", model.ComponentTypeProvidentFund,
		RequireContributionType("IN provident fund", model.ContributionBoth),
		RequireEmployeePercentage("IN provident fund", decimal.NewFromInt(12)),
		RequireEmployerPercentage("IN provident fund", decimal.NewFromInt(12)),
	)
	r.Register("IN", model.ComponentTypeSocialInsurance,
		RequireContributionType("IN employee state insurance", model.ContributionBoth),
		RequireEmployeePercentage("IN employee state insurance", decimal.RequireFromString("0.75")),
		RequireEmployerPercentage("IN employee state insurance", decimal.RequireFromString("3.25")),
	)

	r.RestrictTypes("PH",
		model.ComponentTypeSocialSecurity,
		model.ComponentTypeHealthFund,
		model.ComponentTypeHousingFund,
		model.ComponentTypeTaxWithholding,
	)
	r.Register("PH", model.ComponentTypeSocialSecurity, RequireContributionType("PH social security", model.ContributionBoth))
	r.Register("PH", model.ComponentTypeHealthFund, RequireContributionType("PH health insurance", model.ContributionBoth))
	r.Register("PH", model.ComponentTypeHousingFund, RequireContributionType("PH housing fund", model.ContributionBoth))

	return r
}
