package service

import (
	"context"
	"time"

	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	Actor      string `json:"actor"`
	CountryID  string `json:"country_id,omitempty"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

// AuditLogFilter narrows the audit history
type AuditLogFilter struct {
	CountryID *uuid.UUID
	EntityID  string
	Page      int
	PageSize  int
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, filter AuditLogFilter) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

// GetAuditLogs returns one page of the change history, newest first
func (s *auditService) GetAuditLogs(ctx context.Context, filter AuditLogFilter) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, repository.AuditFilter{
		CountryID: filter.CountryID,
		EntityID:  filter.EntityID,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	})
	if err != nil {
		return nil, 0, model.StorageFailure(err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		actor := l.Actor
		if actor == "" {
			actor = "System"
		}
		countryID := ""
		if l.CountryID != nil {
			countryID = l.CountryID.String()
		}

		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			Actor:      actor,
			CountryID:  countryID,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		})
	}

	return res, total, nil
}
