package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lablink/backend/internal/db"
	"github.com/lablink/backend/internal/errs"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*db.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &db.DB{Pool: mock}, mock
}

var itemCols = []string{"id", "name", "category", "quantity", "description", "image_url", "location", "created_at", "updated_at"}

func itemRow(id uuid.UUID, name string, qty int) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(itemCols).
		AddRow(id, name, "Sensor", qty, nil, nil, "Rack B, Shelf 1", now, now)
}

func TestItemRepo_GetByID_NotFound(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewItemRepo(d)

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(itemCols))

	_, err := r.GetByID(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_AdjustQuantity_OK(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewItemRepo(d)

	id := uuid.New()
	mock.ExpectQuery(`UPDATE items\s+SET quantity = quantity \+ \$2, updated_at = now\(\)\s+WHERE id = \$1 AND quantity \+ \$2 >= 0\s+RETURNING quantity`).
		WithArgs(id, -2).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(3))

	newQty, err := r.AdjustQuantity(context.Background(), mock, id, -2)
	require.NoError(t, err)
	require.Equal(t, 3, newQty)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_AdjustQuantity_WouldGoNegative(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewItemRepo(d)

	id := uuid.New()
	// The guard predicate matches no row, so no quantity comes back.
	mock.ExpectQuery(`UPDATE items`).
		WithArgs(id, -5).
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}))

	_, err := r.AdjustQuantity(context.Background(), mock, id, -5)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_List_Filters(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewItemRepo(d)

	category := "Sensor"
	search := "ultra"
	mock.ExpectQuery(`SELECT .+ FROM items WHERE category = \$1 AND name ILIKE \$2 AND quantity > 0 ORDER BY name`).
		WithArgs(category, "%ultra%").
		WillReturnRows(itemRow(uuid.New(), "HC-SR04 Ultrasonic Sensor", 30))

	items, err := r.List(context.Background(), ItemFilter{
		Category:      &category,
		NameContains:  &search,
		OnlyAvailable: true,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "HC-SR04 Ultrasonic Sensor", items[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_Delete_NotFound(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewItemRepo(d)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM items WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := r.Delete(context.Background(), mock, id)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
