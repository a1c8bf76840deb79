package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"statutory-engine/internal/metrics"
	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"
	"statutory-engine/internal/rules"
	"statutory-engine/internal/service"
	"statutory-engine/internal/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.ComponentEvent
}

func (p *recordingPublisher) Publish(event model.ComponentEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []model.ComponentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.ComponentEvent(nil), p.events...)
}

type fixture struct {
	db          *gorm.DB
	svc         service.StatutoryComponentService
	components  repository.StatutoryComponentRepository
	configs     repository.RegionConfigurationRepository
	audits      repository.AuditRepository
	india       *model.Country
	philippines *model.Country
	events      *recordingPublisher
	logs        *observer.ObservedLogs
	metrics     *metrics.Metrics
}

// newFixture wires the service against in-memory SQLite with IN and PH seeded.
// wrap, when given, decorates the component repository the service sees.
func newFixture(t *testing.T, wrap ...func(repository.StatutoryComponentRepository) repository.StatutoryComponentRepository) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	countries := repository.NewCountryRepository(db)
	india := &model.Country{Code: "IN", Name: "India", TaxYearStartMonth: 4, IsActive: true}
	philippines := &model.Country{Code: "PH", Name: "Philippines", TaxYearStartMonth: 1, IsActive: true}
	require.NoError(t, countries.Create(ctx, india))
	require.NoError(t, countries.Create(ctx, philippines))

	components := repository.NewStatutoryComponentRepository(db)
	var seen repository.StatutoryComponentRepository = components
	for _, w := range wrap {
		seen = w(seen)
	}

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	m := metrics.New(prometheus.NewRegistry())
	events := &recordingPublisher{}
	configs := repository.NewRegionConfigurationRepository(db)
	audits := repository.NewAuditRepository(db)

	svc := service.NewStatutoryComponentService(
		seen,
		countries,
		configs,
		audits,
		repository.NewTransactionManager(db),
		rules.NewEngine(rules.DefaultRegistry(), log),
		service.WithEventPublisher(events),
		service.WithMetrics(m),
		service.WithLogger(log),
	)

	return &fixture{
		db:          db,
		svc:         svc,
		components:  components,
		configs:     configs,
		audits:      audits,
		india:       india,
		philippines: philippines,
		events:      events,
		logs:        logs,
		metrics:     m,
	}
}

func (f *fixture) addRegionRules(t *testing.T, country *model.Country, doc string, active bool) {
	t.Helper()
	require.NoError(t, f.configs.Create(context.Background(), &model.RegionConfiguration{
		CountryID: country.ID,
		Key:       model.RegionConfigKeyStatutoryRules,
		Value:     datatypes.JSON(doc),
		IsActive:  active,
	}))
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

// providentFund is the IN provident fund configuration every payroll starts with
func providentFund() service.CreateStatutoryComponentRequest {
	return service.CreateStatutoryComponentRequest{
		ComponentName:       "Employees' Provident Fund",
		ComponentCode:       "EPF",
		ComponentType:       string(model.ComponentTypeProvidentFund),
		ContributionType:    string(model.ContributionBoth),
		CalculationBasis:    string(model.BasisBasicSalary),
		EmployeePercentage:  dec("12"),
		EmployerPercentage:  dec("12"),
		WageCeiling:         dec("15000"),
		EffectiveFrom:       "2024-01-01",
		IsMandatory:         true,
		DisplayOrder:        1,
		RegulatoryReference: "EPF & MP Act, 1952",
	}
}

// labourWelfare is a small non-mandatory IN component
func labourWelfare() service.CreateStatutoryComponentRequest {
	return service.CreateStatutoryComponentRequest{
		ComponentName:      "Labour Welfare Fund",
		ComponentCode:      "LWF",
		ComponentType:      string(model.ComponentTypeLabourWelfareFund),
		ContributionType:   string(model.ContributionEmployee),
		CalculationBasis:   string(model.BasisGrossSalary),
		EmployeePercentage: dec("0.2"),
		EffectiveFrom:      "2024-01-01",
		DisplayOrder:       5,
	}
}

// socialSecurity is a PH component with no fixed percentages
func socialSecurity() service.CreateStatutoryComponentRequest {
	return service.CreateStatutoryComponentRequest{
		ComponentName:      "Social Security System",
		ComponentCode:      "SSS",
		ComponentType:      string(model.ComponentTypeSocialSecurity),
		ContributionType:   string(model.ContributionBoth),
		CalculationBasis:   string(model.BasisGrossSalary),
		EmployeePercentage: dec("4.5"),
		EmployerPercentage: dec("9.5"),
		EffectiveFrom:      "2024-01-01",
		IsMandatory:        true,
	}
}

func requireRuleError(t *testing.T, err error, code string) *model.DomainError {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidComponentRule)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code, domainErr.Message)
	return domainErr
}

func codes(components []service.StatutoryComponentResponse) []string {
	out := make([]string, 0, len(components))
	for _, c := range components {
		out = append(out, c.ComponentCode)
	}
	return out
}
