package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lablink/backend/internal/db"
	"github.com/lablink/backend/internal/errs"
	"github.com/lablink/backend/internal/models"
	"github.com/lablink/backend/internal/repositories"
	"go.uber.org/zap"
)

// RequestService is the borrow-request lifecycle engine. Each operation runs
// as one transaction: row locks on the affected request/item, the status
// transition, the stock adjustment, and exactly one audit entry commit or
// roll back together.
//
// Stock is only conceptually reserved at submit time; accept is the
// authoritative reservation point and re-checks availability. The first
// accept to reach the conditional stock update wins; a concurrent loser
// gets ErrConflict.
type RequestService struct {
	db          *db.DB
	requestRepo *repositories.RequestRepo
	itemRepo    *repositories.ItemRepo
	auditRepo   *repositories.AuditRepo
	log         *zap.Logger
}

func NewRequestService(
	d *db.DB,
	requestRepo *repositories.RequestRepo,
	itemRepo *repositories.ItemRepo,
	auditRepo *repositories.AuditRepo,
	log *zap.Logger,
) *RequestService {
	return &RequestService{
		db:          d,
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		auditRepo:   auditRepo,
		log:         log,
	}
}

// checkTransition rejects illegal lifecycle edges in one place instead of
// per-endpoint conditionals.
func checkTransition(req *models.Request, to string) error {
	if !models.IsValidTransition(req.Status, to) {
		return fmt.Errorf("cannot move request from %s to %s: %w", req.Status, to, errs.ErrInvalidState)
	}
	return nil
}

// Submit creates a pending request. Stock is validated but not decremented.
func (s *RequestService) Submit(ctx context.Context, requesterID, itemID uuid.UUID, quantity int) (req *models.Request, err error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", errs.ErrInvalidInput)
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

	item, err := s.itemRepo.GetByIDForUpdate(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Quantity == 0 {
		return nil, fmt.Errorf("item %q is out of stock: %w", item.Name, errs.ErrConflict)
	}
	if quantity > item.Quantity {
		return nil, fmt.Errorf("requested %d exceeds available %d: %w", quantity, item.Quantity, errs.ErrConflict)
	}

	req = &models.Request{
		RequesterID: requesterID,
		ItemID:      itemID,
		Quantity:    quantity,
		Status:      models.RequestStatusPending,
	}
	if err = s.requestRepo.Create(ctx, tx, req); err != nil {
		return nil, err
	}

	err = s.auditRepo.Append(ctx, tx, &models.AuditEntry{
		ActorID:    &requesterID,
		Action:     models.ActionSubmit,
		EntityType: models.EntityRequest,
		EntityID:   &req.ID,
		Detail: map[string]any{
			"item_id":   itemID.String(),
			"item_name": item.Name,
			"quantity":  quantity,
		},
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Accept transitions a pending request to accepted and decrements the item's
// stock. Availability is re-checked here because stock may have changed since
// submit; competing accepts on the same item serialize on the row locks and
// the loser fails with ErrConflict.
func (s *RequestService) Accept(ctx context.Context, approverID, requestID uuid.UUID) (req *models.Request, err error) {
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

	req, err = s.requestRepo.GetByIDForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if err = checkTransition(req, models.RequestStatusAccepted); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByIDForUpdate(ctx, tx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Quantity < req.Quantity {
		return nil, fmt.Errorf("insufficient stock: available %d, requested %d: %w",
			item.Quantity, req.Quantity, errs.ErrConflict)
	}

	newQty, err := s.itemRepo.AdjustQuantity(ctx, tx, req.ItemID, -req.Quantity)
	if err != nil {
		return nil, err
	}

	if err = s.requestRepo.UpdateDecision(ctx, tx, req.ID, models.RequestStatusAccepted, approverID, nil); err != nil {
		return nil, err
	}
	req.Status = models.RequestStatusAccepted
	req.DecidedBy = &approverID

	err = s.auditRepo.Append(ctx, tx, &models.AuditEntry{
		ActorID:    &approverID,
		Action:     models.ActionAccept,
		EntityType: models.EntityRequest,
		EntityID:   &req.ID,
		Detail: map[string]any{
			"item_id":           req.ItemID.String(),
			"item_name":         item.Name,
			"quantity":          req.Quantity,
			"previous_quantity": item.Quantity,
			"new_quantity":      newQty,
		},
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Reject transitions a pending request to rejected. Stock is untouched.
func (s *RequestService) Reject(ctx context.Context, approverID, requestID uuid.UUID, note *string) (req *models.Request, err error) {
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

	req, err = s.requestRepo.GetByIDForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if err = checkTransition(req, models.RequestStatusRejected); err != nil {
		return nil, err
	}

	// Deletion is blocked while the request is pending, so the item is
	// still present.
	item, err := s.itemRepo.GetByIDForUpdate(ctx, tx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if err = s.requestRepo.UpdateDecision(ctx, tx, req.ID, models.RequestStatusRejected, approverID, note); err != nil {
		return nil, err
	}
	req.Status = models.RequestStatusRejected
	req.DecidedBy = &approverID
	req.DecisionNote = note

	detail := map[string]any{
		"item_id":   req.ItemID.String(),
		"item_name": item.Name,
		"quantity":  req.Quantity,
	}
	if note != nil {
		detail["decision_note"] = *note
	}

	err = s.auditRepo.Append(ctx, tx, &models.AuditEntry{
		ActorID:    &approverID,
		Action:     models.ActionReject,
		EntityType: models.EntityRequest,
		EntityID:   &req.ID,
		Detail:     detail,
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Close transitions an accepted request to closed and returns the borrowed
// quantity to stock. A second close finds status closed and fails the
// transition check, so returns never double-increment.
func (s *RequestService) Close(ctx context.Context, approverID, requestID uuid.UUID) (req *models.Request, err error) {
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

	req, err = s.requestRepo.GetByIDForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if err = checkTransition(req, models.RequestStatusClosed); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByIDForUpdate(ctx, tx, req.ItemID)
	if err != nil {
		return nil, err
	}

	newQty, err := s.itemRepo.AdjustQuantity(ctx, tx, req.ItemID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err = s.requestRepo.MarkClosed(ctx, tx, req.ID); err != nil {
		return nil, err
	}
	req.Status = models.RequestStatusClosed

	err = s.auditRepo.Append(ctx, tx, &models.AuditEntry{
		ActorID:    &approverID,
		Action:     models.ActionClose,
		EntityType: models.EntityRequest,
		EntityID:   &req.ID,
		Detail: map[string]any{
			"item_id":           req.ItemID.String(),
			"item_name":         item.Name,
			"quantity":          req.Quantity,
			"previous_quantity": item.Quantity,
			"new_quantity":      newQty,
		},
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// List returns requests scoped by role: requesters see only their own,
// approvers see all.
func (s *RequestService) List(ctx context.Context, actorID uuid.UUID, role string, f repositories.RequestFilter) ([]models.RequestWithItem, error) {
	if f.Status != nil && !models.IsValidRequestStatus(*f.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", *f.Status, errs.ErrInvalidInput)
	}
	if role != models.RoleApprover {
		f.RequesterID = &actorID
	}
	return s.requestRepo.ListWithItem(ctx, f)
}

// Get returns one request; requesters may only read their own.
func (s *RequestService) Get(ctx context.Context, actorID uuid.UUID, role string, id uuid.UUID) (*models.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleApprover && req.RequesterID != actorID {
		return nil, fmt.Errorf("request belongs to another account: %w", errs.ErrForbidden)
	}
	return req, nil
}
