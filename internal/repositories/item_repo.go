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

type ItemRepo struct {
	db *db.DB
}

func NewItemRepo(d *db.DB) *ItemRepo {
	return &ItemRepo{db: d}
}

const itemColumns = `id, name, category, quantity, description, image_url, location, created_at, updated_at`

func scanItem(row pgx.Row, it *models.Item) error {
	return row.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity, &it.Description,
		&it.ImageURL, &it.Location, &it.CreatedAt, &it.UpdatedAt)
}

// Create inserts the item using the caller's querier so the insert and its
// audit entry share one transaction.
func (r *ItemRepo) Create(ctx context.Context, q db.Querier, it *models.Item) error {
	return q.QueryRow(ctx, `
		INSERT INTO items (name, category, quantity, description, image_url, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, it.Name, it.Category, it.Quantity, it.Description, it.ImageURL, it.Location,
	).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
}

func (r *ItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return r.get(ctx, r.db.Pool, id, false)
}

// GetByIDForUpdate locks the item row for the remainder of the transaction.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) (*models.Item, error) {
	return r.get(ctx, q, id, true)
}

func (r *ItemRepo) get(ctx context.Context, q db.Querier, id uuid.UUID, forUpdate bool) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var it models.Item
	if err := scanItem(q.QueryRow(ctx, query, id), &it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", id, errs.ErrNotFound)
		}
		return nil, err
	}
	return &it, nil
}

type ItemFilter struct {
	Category      *string
	NameContains  *string
	OnlyAvailable bool
}

func (r *ItemRepo) List(ctx context.Context, f ItemFilter) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Category != nil {
		where = append(where, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *f.Category)
		argIdx++
	}
	if f.NameContains != nil {
		where = append(where, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+*f.NameContains+"%")
		argIdx++
	}
	if f.OnlyAvailable {
		where = append(where, "quantity > 0")
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
	query += " ORDER BY name"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update writes all mutable fields. The caller resolves partial updates
// against the current row before calling.
func (r *ItemRepo) Update(ctx context.Context, q db.Querier, it *models.Item) error {
	err := q.QueryRow(ctx, `
		UPDATE items
		SET name = $2, category = $3, quantity = $4, description = $5, image_url = $6, location = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, it.ID, it.Name, it.Category, it.Quantity, it.Description, it.ImageURL, it.Location,
	).Scan(&it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("item %s: %w", it.ID, errs.ErrNotFound)
		}
		if db.IsCheckViolation(err) {
			return fmt.Errorf("quantity must not be negative: %w", errs.ErrInvalidInput)
		}
		return err
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, q db.Querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// AdjustQuantity atomically applies delta to the item's on-hand quantity.
// The WHERE predicate is the authoritative non-negative stock guard: if the
// resulting quantity would go below zero no row matches and ErrConflict is
// returned. This is the only entry point the lifecycle engine uses to mutate
// stock, always inside the transition's transaction.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, q db.Querier, id uuid.UUID, delta int) (newQuantity int, err error) {
	err = q.QueryRow(ctx, `
		UPDATE items
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING quantity
	`, id, delta).Scan(&newQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("insufficient stock for item %s: %w", id, errs.ErrConflict)
		}
		return 0, err
	}
	return newQuantity, nil
}
