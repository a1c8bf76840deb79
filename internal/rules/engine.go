package rules

import (
	"statutory-engine/internal/model"

	"go.uber.org/zap"
)

// Engine runs every validation layer a component must pass before any write
type Engine struct {
	registry *Registry
	logger   *zap.Logger
}

// NewEngine creates an engine. A nil registry means no jurisdiction mandates.
func NewEngine(registry *Registry, logger *zap.Logger) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{registry: registry, logger: logger.Named("rules")}
}

// Validate checks structure, then the jurisdiction mandates of the country,
// then the soft rules found in the country's region configuration.
func (e *Engine) Validate(c *model.StatutoryComponent, country *model.Country, configs []model.RegionConfiguration) error {
	if err := ValidateStructure(c); err != nil {
		return err
	}
	if err := e.registry.Validate(country.Code, c); err != nil {
		return err
	}

	soft, err := ParseSoftRules(configs)
	if err != nil {
		// A broken document must not block writes; it only disables soft rules.
		e.logger.Warn("ignoring malformed region rules",
			zap.String("country_id", country.ID.String()),
			zap.String("country_code", country.Code),
			zap.Error(err),
		)
		return nil
	}
	return soft.Validate(c)
}
