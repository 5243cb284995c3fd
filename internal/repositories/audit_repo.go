package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lablink/backend/internal/db"
	"github.com/lablink/backend/internal/models"
)

type AuditRepo struct {
	db *db.DB
}

func NewAuditRepo(d *db.DB) *AuditRepo {
	return &AuditRepo{db: d}
}

// Append writes one audit entry using the caller's querier. Lifecycle and
// catalog mutations pass their open transaction so the entry commits or rolls
// back together with the mutation it records.
func (r *AuditRepo) Append(ctx context.Context, q db.Querier, e *models.AuditEntry) error {
	return q.QueryRow(ctx, `
		INSERT INTO audit_log (actor_id, action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, e.ActorID, e.Action, e.EntityType, e.EntityID, e.Detail).Scan(&e.ID, &e.CreatedAt)
}

type AuditFilter struct {
	From         *time.Time
	To           *time.Time
	ActorID      *uuid.UUID
	Action       *string
	ItemNameLike *string
	Limit        int
	Offset       int
}

// Query returns audit entries most recent first. Limit and offset are assumed
// validated by the caller.
func (r *AuditRepo) Query(ctx context.Context, f AuditFilter) ([]models.AuditEntry, error) {
	query := `
		SELECT id, actor_id, action, entity_type, entity_id, detail, created_at
		FROM audit_log
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.From != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *f.To)
		argIdx++
	}
	if f.ActorID != nil {
		where = append(where, fmt.Sprintf("actor_id = $%d", argIdx))
		args = append(args, *f.ActorID)
		argIdx++
	}
	if f.Action != nil {
		where = append(where, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, *f.Action)
		argIdx++
	}
	if f.ItemNameLike != nil {
		where = append(where, fmt.Sprintf("detail->>'item_name' ILIKE $%d", argIdx))
		args = append(args, "%"+*f.ItemNameLike+"%")
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
		limit = 100
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByEntity returns the number of entries recorded for one entity.
func (r *AuditRepo) CountByEntity(ctx context.Context, entityType string, entityID uuid.UUID) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM audit_log WHERE entity_type = $1 AND entity_id = $2
	`, entityType, entityID).Scan(&n)
	return n, err
}
