package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lablink/backend/internal/db"
	"github.com/lablink/backend/internal/errs"
	"github.com/lablink/backend/internal/models"
	"github.com/lablink/backend/internal/repositories"
	"go.uber.org/zap"
)

// CatalogService owns item CRUD. Every mutation writes one audit entry in the
// same transaction.
type CatalogService struct {
	db          *db.DB
	itemRepo    *repositories.ItemRepo
	requestRepo *repositories.RequestRepo
	auditRepo   *repositories.AuditRepo
	log         *zap.Logger
}

func NewCatalogService(
	d *db.DB,
	itemRepo *repositories.ItemRepo,
	requestRepo *repositories.RequestRepo,
	auditRepo *repositories.AuditRepo,
	log *zap.Logger,
) *CatalogService {
	return &CatalogService{
		db:          d,
		itemRepo:    itemRepo,
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
		log:         log,
	}
}

func validateItem(it *models.Item) error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("name is required: %w", errs.ErrInvalidInput)
	}
	if strings.TrimSpace(it.Category) == "" {
		return fmt.Errorf("category is required: %w", errs.ErrInvalidInput)
	}
	if strings.TrimSpace(it.Location) == "" {
		return fmt.Errorf("location is required: %w", errs.ErrInvalidInput)
	}
	if it.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %w", errs.ErrInvalidInput)
	}
	return nil
}

func (s *CatalogService) CreateItem(ctx context.Context, actorID uuid.UUID, it *models.Item) (err error) {
	if err := validateItem(it); err != nil {
		return err
	}

	tx, err := s.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	if err = s.itemRepo.Create(ctx, tx, it); err != nil {
		return err
	}

	return s.auditRepo.Append(ctx, tx, &models.AuditEntry{
		ActorID:    &actorID,
		Action:     models.ActionCreate,
		EntityType: models.EntityItem,
		EntityID:   &it.ID,
		Detail: map[string]any{
			"item_name": it.Name,
			"category":  it.Category,
			"quantity":  it.Quantity,
			"location":  it.Location,
		},
	})
}

func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListItems(ctx context.Context, f repositories.ItemFilter) ([]models.Item, error) {
	return s.itemRepo.List(ctx, f)
}

// ItemPatch carries the fields an approver may change; nil means keep current.
type ItemPatch struct {
	Name        *string
	Category    *string
	Quantity    *int
	Description *string
	ImageURL    *string
	Location    *string
}

// UpdateItem applies a partial edit. Direct quantity edits are permitted
// without re-validating against outstanding accepted requests; the audit
// entry records old and new values so discrepancies stay traceable.
func (s *CatalogService) UpdateItem(ctx context.Context, actorID, id uuid.UUID, p ItemPatch) (it *models.Item, err error) {
	if p.Quantity != nil && *p.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", errs.ErrInvalidInput)
	}

	tx, err := s.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	it, err = s.itemRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	oldValues := map[string]any{
		"name":     it.Name,
		"category": it.Category,
		"quantity": it.Quantity,
		"location": it.Location,
	}

	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.Description != nil {
		it.Description = p.Description
	}
	if p.ImageURL != nil {
		it.ImageURL = p.ImageURL
	}
	if p.Location != nil {
		it.Location = *p.Location
	}

	if err = validateItem(it); err != nil {
		return nil, err
	}
	if err = s.itemRepo.Update(ctx, tx, it); err != nil {
		return nil, err
	}

	err = s.auditRepo.Append(ctx, tx, &models.AuditEntry{
		ActorID:    &actorID,
		Action:     models.ActionUpdate,
		EntityType: models.EntityItem,
		EntityID:   &it.ID,
		Detail: map[string]any{
			"item_name":  it.Name,
			"old_values": oldValues,
			"new_values": map[string]any{
				"name":     it.Name,
				"category": it.Category,
				"quantity": it.Quantity,
				"location": it.Location,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// DeleteItem removes an item unless any request on it is still pending or
// accepted.
func (s *CatalogService) DeleteItem(ctx context.Context, actorID, id uuid.UUID) (err error) {
	tx, err := s.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	it, err := s.itemRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	open, err := s.requestRepo.CountOpenByItem(ctx, tx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return fmt.Errorf("item has %d open request(s): %w", open, errs.ErrConflict)
	}

	err = s.auditRepo.Append(ctx, tx, &models.AuditEntry{
		ActorID:    &actorID,
		Action:     models.ActionDelete,
		EntityType: models.EntityItem,
		EntityID:   &it.ID,
		Detail: map[string]any{
			"item_name": it.Name,
			"category":  it.Category,
			"quantity":  it.Quantity,
			"location":  it.Location,
		},
	})
	if err != nil {
		return err
	}

	return s.itemRepo.Delete(ctx, tx, id)
}
