package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lablink/backend/internal/db"
	"github.com/lablink/backend/internal/errs"
	"github.com/lablink/backend/internal/models"
)

type RequestRepo struct {
	db *db.DB
}

func NewRequestRepo(d *db.DB) *RequestRepo {
	return &RequestRepo{db: d}
}

const requestColumns = `id, requester_id, item_id, quantity, status, decision_note, created_at, decided_at, decided_by, closed_at`

func scanRequest(row pgx.Row, req *models.Request) error {
	return row.Scan(&req.ID, &req.RequesterID, &req.ItemID, &req.Quantity, &req.Status,
		&req.DecisionNote, &req.CreatedAt, &req.DecidedAt, &req.DecidedBy, &req.ClosedAt)
}

func (r *RequestRepo) Create(ctx context.Context, q db.Querier, req *models.Request) error {
	return q.QueryRow(ctx, `
		INSERT INTO requests (requester_id, item_id, quantity, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, req.RequesterID, req.ItemID, req.Quantity, req.Status).Scan(&req.ID, &req.CreatedAt)
}

func (r *RequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	return r.get(ctx, r.db.Pool, id, false)
}

// GetByIDForUpdate locks the request row so concurrent decisions on the same
// request serialize.
func (r *RequestRepo) GetByIDForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) (*models.Request, error) {
	return r.get(ctx, q, id, true)
}

func (r *RequestRepo) get(ctx context.Context, q db.Querier, id uuid.UUID, forUpdate bool) (*models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var req models.Request
	if err := scanRequest(q.QueryRow(ctx, query, id), &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("request %s: %w", id, errs.ErrNotFound)
		}
		return nil, err
	}
	return &req, nil
}

type RequestFilter struct {
	RequesterID *uuid.UUID
	ItemID      *uuid.UUID
	Status      *string
	Limit       int
	Offset      int
}

// ListWithItem returns requests joined with item name/category, most recent
// first. A nil RequesterID means no requester scoping (approver view).
func (r *RequestRepo) ListWithItem(ctx context.Context, f RequestFilter) ([]models.RequestWithItem, error) {
	query := `
		SELECT r.id, r.requester_id, r.item_id, r.quantity, r.status, r.decision_note,
		       r.created_at, r.decided_at, r.decided_by, r.closed_at,
		       i.name, i.category
		FROM requests r
		LEFT JOIN items i ON i.id = r.item_id
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.RequesterID != nil {
		where = append(where, fmt.Sprintf("r.requester_id = $%d", argIdx))
		args = append(args, *f.RequesterID)
		argIdx++
	}
	if f.ItemID != nil {
		where = append(where, fmt.Sprintf("r.item_id = $%d", argIdx))
		args = append(args, *f.ItemID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("r.status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	query += fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []models.RequestWithItem
	for rows.Next() {
		var req models.RequestWithItem
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.ItemID, &req.Quantity, &req.Status,
			&req.DecisionNote, &req.CreatedAt, &req.DecidedAt, &req.DecidedBy, &req.ClosedAt,
			&req.ItemName, &req.ItemCategory); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// UpdateDecision records an accept or reject decision on a pending request.
func (r *RequestRepo) UpdateDecision(ctx context.Context, q db.Querier, id uuid.UUID, status string, decidedBy uuid.UUID, note *string) error {
	tag, err := q.Exec(ctx, `
		UPDATE requests
		SET status = $2, decided_by = $3, decided_at = now(), decision_note = $4
		WHERE id = $1
	`, id, status, decidedBy, note)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// MarkClosed transitions an accepted request to closed.
func (r *RequestRepo) MarkClosed(ctx context.Context, q db.Querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `
		UPDATE requests
		SET status = $2, closed_at = now()
		WHERE id = $1
	`, id, models.RequestStatusClosed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// CountOpenByItem counts requests on the item that are still pending or
// accepted. Item deletion is blocked while this is non-zero.
func (r *RequestRepo) CountOpenByItem(ctx context.Context, q db.Querier, itemID uuid.UUID) (int, error) {
	var n int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM requests
		WHERE item_id = $1 AND status = ANY($2)
	`, itemID, []string{models.RequestStatusPending, models.RequestStatusAccepted}).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
