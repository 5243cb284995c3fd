package services

import (
	"context"
	"fmt"

	"github.com/lablink/backend/internal/config"
	"github.com/lablink/backend/internal/errs"
	"github.com/lablink/backend/internal/models"
	"github.com/lablink/backend/internal/repositories"
	"go.uber.org/zap"
)

type AuditService struct {
	auditRepo *repositories.AuditRepo
	cfg       *config.Config
	log       *zap.Logger
}

func NewAuditService(auditRepo *repositories.AuditRepo, cfg *config.Config, log *zap.Logger) *AuditService {
	return &AuditService{auditRepo: auditRepo, cfg: cfg, log: log}
}

// Query validates filter bounds and returns matching entries, most recent
// first.
func (s *AuditService) Query(ctx context.Context, f repositories.AuditFilter) ([]models.AuditEntry, error) {
	if f.Limit == 0 {
		f.Limit = s.cfg.AuditDefaultPageSize
	}
	if f.Limit < 1 || f.Limit > s.cfg.AuditMaxPageSize {
		return nil, fmt.Errorf("limit must be between 1 and %d: %w", s.cfg.AuditMaxPageSize, errs.ErrInvalidInput)
	}
	if f.Offset < 0 {
		return nil, fmt.Errorf("offset must be non-negative: %w", errs.ErrInvalidInput)
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, fmt.Errorf("end date precedes start date: %w", errs.ErrInvalidInput)
	}
	if f.Action != nil && !models.IsValidAction(*f.Action) {
		return nil, fmt.Errorf("unknown action %q: %w", *f.Action, errs.ErrInvalidInput)
	}
	return s.auditRepo.Query(ctx, f)
}
