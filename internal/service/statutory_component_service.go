package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"statutory-engine/internal/logger"
	"statutory-engine/internal/metrics"
	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"
	"statutory-engine/internal/rules"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Rule codes raised by the service itself
const (
	CodeDuplicateComponentCode = "DUPLICATE_COMPONENT_CODE"
	CodeMandatoryComponent     = "MANDATORY_COMPONENT"
	CodeSupersedeType          = "SUPERSEDE_TYPE_MISMATCH"
	CodeSupersedeEffectiveFrom = "SUPERSEDE_EFFECTIVE_FROM"
)

// Operation names used in logs and metrics
const (
	opCreate       = "create"
	opList         = "list"
	opGet          = "get"
	opListByType   = "list_by_type"
	opListActiveOn = "list_active_on"
	opUpdate       = "update"
	opDelete       = "delete"
	opSupersede    = "supersede"
)

// EventPublisher receives committed component changes
type EventPublisher interface {
	Publish(event model.ComponentEvent)
}

type StatutoryComponentService interface {
	Create(ctx context.Context, countryID uuid.UUID, req CreateStatutoryComponentRequest, actor string) (StatutoryComponentResponse, error)
	List(ctx context.Context, countryID uuid.UUID, filter ListStatutoryComponentsFilter) (StatutoryComponentPage, error)
	Get(ctx context.Context, countryID, id uuid.UUID) (StatutoryComponentResponse, error)
	ListByType(ctx context.Context, countryID uuid.UUID, componentType string) ([]StatutoryComponentResponse, error)
	ListActiveOn(ctx context.Context, countryID uuid.UUID, date time.Time) ([]StatutoryComponentResponse, error)
	Update(ctx context.Context, countryID, id uuid.UUID, req UpdateStatutoryComponentRequest, actor string) (StatutoryComponentResponse, error)
	Delete(ctx context.Context, countryID, id uuid.UUID, actor string) error
	Supersede(ctx context.Context, countryID, id uuid.UUID, req CreateStatutoryComponentRequest, actor string) (SupersedeResponse, error)
}

type statutoryComponentService struct {
	components repository.StatutoryComponentRepository
	countries  repository.CountryRepository
	configs    repository.RegionConfigurationRepository
	audits     repository.AuditRepository
	txManager  repository.TransactionManager
	engine     *rules.Engine
	events     EventPublisher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// ServiceOption configures optional collaborators
type ServiceOption func(*statutoryComponentService)

// WithEventPublisher broadcasts committed changes
func WithEventPublisher(p EventPublisher) ServiceOption {
	return func(s *statutoryComponentService) {
		s.events = p
	}
}

// WithMetrics records write outcomes and resolution latency
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *statutoryComponentService) {
		s.metrics = m
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *statutoryComponentService) {
		s.logger = l
	}
}

func NewStatutoryComponentService(
	components repository.StatutoryComponentRepository,
	countries repository.CountryRepository,
	configs repository.RegionConfigurationRepository,
	audits repository.AuditRepository,
	txManager repository.TransactionManager,
	engine *rules.Engine,
	opts ...ServiceOption,
) StatutoryComponentService {
	s := &statutoryComponentService{
		components: components,
		countries:  countries,
		configs:    configs,
		audits:     audits,
		txManager:  txManager,
		engine:     engine,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("statutory_components")
	return s
}

// --- Writes ---

func (s *statutoryComponentService) Create(ctx context.Context, countryID uuid.UUID, req CreateStatutoryComponentRequest, actor string) (StatutoryComponentResponse, error) {
	component, err := req.toModel(countryID)
	if err != nil {
		return StatutoryComponentResponse{}, s.fail(ctx, opCreate, countryID, uuid.Nil, err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.validate(txCtx, component); err != nil {
			return err
		}
		if err := s.ensureCodeAvailable(txCtx, countryID, component.ComponentCode); err != nil {
			return err
		}
		return s.insert(txCtx, component)
	})
	if err != nil {
		return StatutoryComponentResponse{}, s.fail(ctx, opCreate, countryID, uuid.Nil, err)
	}

	s.succeeded(ctx, opCreate, model.ActionCreateStatutoryComponent, model.EventComponentCreated, component, actor, req)
	return toStatutoryComponentResponse(*component), nil
}

func (s *statutoryComponentService) Update(ctx context.Context, countryID, id uuid.UUID, req UpdateStatutoryComponentRequest, actor string) (StatutoryComponentResponse, error) {
	var merged model.StatutoryComponent

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.load(txCtx, countryID, id)
		if err != nil {
			return err
		}

		merged = existing.Clone()
		if err := req.applyTo(&merged); err != nil {
			return err
		}

		// The full merged record is validated, never just the patched fields.
		if err := s.validate(txCtx, &merged); err != nil {
			return err
		}
		if merged.ComponentCode != existing.ComponentCode {
			if err := s.ensureCodeAvailable(txCtx, countryID, merged.ComponentCode); err != nil {
				return err
			}
		}

		if err := s.components.Update(txCtx, &merged); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return duplicateCode(merged.ComponentCode)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return StatutoryComponentResponse{}, s.fail(ctx, opUpdate, countryID, id, err)
	}

	s.succeeded(ctx, opUpdate, model.ActionUpdateStatutoryComponent, model.EventComponentUpdated, &merged, actor, req)
	return toStatutoryComponentResponse(merged), nil
}

func (s *statutoryComponentService) Delete(ctx context.Context, countryID, id uuid.UUID, actor string) error {
	var deleted *model.StatutoryComponent

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.load(txCtx, countryID, id)
		if err != nil {
			return err
		}
		if existing.IsMandatory {
			return model.InvalidRule(CodeMandatoryComponent,
				"mandatory component %s cannot be deleted; deactivate it or supersede it with a new version", existing.ComponentCode)
		}

		if err := s.components.Delete(txCtx, existing.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.NotFound("statutory component")
			}
			return err
		}
		deleted = existing
		return nil
	})
	if err != nil {
		return s.fail(ctx, opDelete, countryID, id, err)
	}

	s.succeeded(ctx, opDelete, model.ActionDeleteStatutoryComponent, model.EventComponentDeleted, deleted, actor,
		map[string]string{"deleted_id": id.String(), "component_code": deleted.ComponentCode})
	return nil
}

// Supersede closes an existing component the day before its successor takes effect
// and creates the successor, in one transaction.
func (s *statutoryComponentService) Supersede(ctx context.Context, countryID, id uuid.UUID, req CreateStatutoryComponentRequest, actor string) (SupersedeResponse, error) {
	successor, err := req.toModel(countryID)
	if err != nil {
		return SupersedeResponse{}, s.fail(ctx, opSupersede, countryID, id, err)
	}

	var (
		closed      model.StatutoryComponent
		closedRange bool
	)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.load(txCtx, countryID, id)
		if err != nil {
			return err
		}
		if successor.ComponentType != existing.ComponentType {
			return model.InvalidRule(CodeSupersedeType,
				"successor must have component type %s", existing.ComponentType)
		}

		earliest := existing.EffectiveFrom.AddDate(0, 0, 2)
		if successor.EffectiveFrom.Before(earliest) {
			return model.InvalidRule(CodeSupersedeEffectiveFrom,
				"successor must take effect on or after %s", model.FormatDate(earliest))
		}

		closed = existing.Clone()
		dayBefore := successor.EffectiveFrom.AddDate(0, 0, -1)
		if closed.EffectiveTo == nil || closed.EffectiveTo.After(dayBefore) {
			closed.EffectiveTo = &dayBefore
			closedRange = true
			if err := s.components.Update(txCtx, &closed); err != nil {
				return err
			}
		}

		if err := s.validate(txCtx, successor); err != nil {
			return err
		}
		if err := s.ensureCodeAvailable(txCtx, countryID, successor.ComponentCode); err != nil {
			return err
		}
		return s.insert(txCtx, successor)
	})
	if err != nil {
		return SupersedeResponse{}, s.fail(ctx, opSupersede, countryID, id, err)
	}

	if closedRange {
		s.publish(model.EventComponentUpdated, &closed, actor)
	}
	s.succeeded(ctx, opSupersede, model.ActionSupersedeStatutoryComponent, model.EventComponentSuperseded, successor, actor,
		map[string]string{
			"superseded_id":   closed.ID.String(),
			"superseded_code": closed.ComponentCode,
			"superseded_to":   model.FormatDate(*closed.EffectiveTo),
			"successor_code":  successor.ComponentCode,
		})
	return SupersedeResponse{
		Superseded: toStatutoryComponentResponse(closed),
		Successor:  toStatutoryComponentResponse(*successor),
	}, nil
}

// --- Reads ---

func (s *statutoryComponentService) List(ctx context.Context, countryID uuid.UUID, filter ListStatutoryComponentsFilter) (StatutoryComponentPage, error) {
	repoFilter := repository.StatutoryComponentFilter{
		CountryID: countryID,
		IsActive:  filter.IsActive,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}
	if filter.ComponentType != "" {
		componentType, err := parseComponentType(filter.ComponentType)
		if err != nil {
			return StatutoryComponentPage{}, err
		}
		repoFilter.ComponentType = &componentType
	}

	if _, err := s.country(ctx, countryID); err != nil {
		return StatutoryComponentPage{}, s.fail(ctx, opList, countryID, uuid.Nil, err)
	}

	components, total, err := s.components.List(ctx, repoFilter)
	if err != nil {
		return StatutoryComponentPage{}, s.fail(ctx, opList, countryID, uuid.Nil, err)
	}

	return StatutoryComponentPage{
		Items:    toStatutoryComponentResponses(components),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *statutoryComponentService) Get(ctx context.Context, countryID, id uuid.UUID) (StatutoryComponentResponse, error) {
	component, err := s.load(ctx, countryID, id)
	if err != nil {
		return StatutoryComponentResponse{}, s.fail(ctx, opGet, countryID, id, err)
	}
	return toStatutoryComponentResponse(*component), nil
}

func (s *statutoryComponentService) ListByType(ctx context.Context, countryID uuid.UUID, componentType string) ([]StatutoryComponentResponse, error) {
	parsed, err := parseComponentType(componentType)
	if err != nil {
		return nil, err
	}
	if _, err := s.country(ctx, countryID); err != nil {
		return nil, s.fail(ctx, opListByType, countryID, uuid.Nil, err)
	}

	components, err := s.components.ListByType(ctx, countryID, parsed)
	if err != nil {
		return nil, s.fail(ctx, opListByType, countryID, uuid.Nil, err)
	}
	return toStatutoryComponentResponses(components), nil
}

// ListActiveOn is the point-in-time snapshot payroll runs consume. It has no side effects.
func (s *statutoryComponentService) ListActiveOn(ctx context.Context, countryID uuid.UUID, date time.Time) ([]StatutoryComponentResponse, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveResolveLatency(time.Since(start)) }()

	if _, err := s.country(ctx, countryID); err != nil {
		return nil, s.fail(ctx, opListActiveOn, countryID, uuid.Nil, err)
	}

	components, err := s.components.ListActiveOn(ctx, countryID, model.TruncateDate(date))
	if err != nil {
		return nil, s.fail(ctx, opListActiveOn, countryID, uuid.Nil, err)
	}
	return toStatutoryComponentResponses(components), nil
}

// --- Helpers ---

func (s *statutoryComponentService) country(ctx context.Context, countryID uuid.UUID) (*model.Country, error) {
	country, err := s.countries.FindByID(ctx, countryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.NotFound("country")
	}
	return country, err
}

// load fetches a component and hides components of other countries
func (s *statutoryComponentService) load(ctx context.Context, countryID, id uuid.UUID) (*model.StatutoryComponent, error) {
	if _, err := s.country(ctx, countryID); err != nil {
		return nil, err
	}
	component, err := s.components.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.NotFound("statutory component")
	}
	if err != nil {
		return nil, err
	}
	if component.CountryID != countryID {
		return nil, model.NotFound("statutory component")
	}
	return component, nil
}

// validate runs the rule engine against the component's country and region configuration
func (s *statutoryComponentService) validate(ctx context.Context, c *model.StatutoryComponent) error {
	country, err := s.country(ctx, c.CountryID)
	if err != nil {
		return err
	}
	configs, err := s.configs.ListByCountry(ctx, c.CountryID)
	if err != nil {
		return err
	}
	return s.engine.Validate(c, country, configs)
}

// ensureCodeAvailable gives a readable error before the unique index would reject the write
func (s *statutoryComponentService) ensureCodeAvailable(ctx context.Context, countryID uuid.UUID, code string) error {
	existing, err := s.components.FindByCode(ctx, countryID, code)
	if err != nil {
		return err
	}
	if existing != nil {
		return duplicateCode(code)
	}
	return nil
}

func (s *statutoryComponentService) insert(ctx context.Context, c *model.StatutoryComponent) error {
	if err := s.components.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return duplicateCode(c.ComponentCode)
		}
		return err
	}
	return nil
}

func duplicateCode(code string) error {
	return model.InvalidRule(CodeDuplicateComponentCode,
		"a statutory component with code %s already exists in this country", code)
}

func parseComponentType(value string) (model.ComponentType, error) {
	t := model.ComponentType(value)
	if !t.IsValid() {
		return "", model.InvalidRule(rules.CodeInvalidComponentType, "unknown component type %q", value)
	}
	return t, nil
}

// fail passes domain errors through and turns anything else into an opaque StorageFailure
func (s *statutoryComponentService) fail(ctx context.Context, op string, countryID, componentID uuid.UUID, err error) error {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case model.KindInvalidComponentRule:
			s.metrics.IncrementRejection(domainErr.Code)
			s.recordWrite(op, metrics.OutcomeRejected)
		case model.KindNotFound:
			s.recordWrite(op, metrics.OutcomeNotFound)
		default:
			s.recordWrite(op, metrics.OutcomeError)
		}
		return domainErr
	}

	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("country_id", countryID.String()),
		zap.Error(err),
	}
	if componentID != uuid.Nil {
		fields = append(fields, zap.String("component_id", componentID.String()))
	}
	logger.FromContext(ctx, s.logger).Error("statutory component storage failure", fields...)
	s.recordWrite(op, metrics.OutcomeError)
	return model.StorageFailure(err)
}

func (s *statutoryComponentService) recordWrite(op, outcome string) {
	switch op {
	case opCreate, opUpdate, opDelete, opSupersede:
		s.metrics.IncrementWrite(op, outcome)
	}
}

// succeeded runs the post-commit side effects. None of them can fail the write.
func (s *statutoryComponentService) succeeded(ctx context.Context, op, action string, eventType model.ComponentEventType, c *model.StatutoryComponent, actor string, details interface{}) {
	s.recordWrite(op, metrics.OutcomeSuccess)
	s.writeAuditLog(ctx, actor, action, c, details)
	s.publish(eventType, c, actor)
}

func (s *statutoryComponentService) publish(eventType model.ComponentEventType, c *model.StatutoryComponent, actor string) {
	if s.events == nil {
		return
	}
	s.events.Publish(model.ComponentEvent{
		Type:          eventType,
		CountryID:     c.CountryID,
		ComponentID:   c.ID,
		ComponentCode: c.ComponentCode,
		Actor:         actor,
		OccurredAt:    time.Now().UTC(),
	})
}

func (s *statutoryComponentService) writeAuditLog(ctx context.Context, actor, action string, c *model.StatutoryComponent, details interface{}) {
	if s.audits == nil {
		return
	}
	detailsJSON, _ := json.Marshal(details)
	countryID := c.CountryID

	entry := model.AuditLog{
		Actor:      actor,
		CountryID:  &countryID,
		Action:     action,
		EntityID:   c.ID.String(),
		EntityName: c.ComponentCode + " " + c.ComponentName,
		Details:    string(detailsJSON),
	}

	// Best-effort audit log, the write has already committed
	if err := s.audits.Log(ctx, &entry); err != nil {
		s.logger.Warn("failed to write audit log",
			zap.String("action", action),
			zap.String("component_id", c.ID.String()),
			zap.Error(err))
	}
}
