package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lablink/backend/internal/db"
	"github.com/lablink/backend/internal/errs"
	"github.com/lablink/backend/internal/models"
	"github.com/lablink/backend/internal/repositories"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCatalogService(t *testing.T) (*CatalogService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	d := &db.DB{Pool: mock}
	svc := NewCatalogService(d,
		repositories.NewItemRepo(d),
		repositories.NewRequestRepo(d),
		repositories.NewAuditRepo(d),
		zap.NewNop())
	return svc, mock
}

func TestCatalogService_CreateItem_OK(t *testing.T) {
	svc, mock := newCatalogService(t)
	defer mock.Close()

	actorID := uuid.New()
	it := &models.Item{
		Name:     "HC-SR04 Ultrasonic Sensor",
		Category: "Sensor",
		Quantity: 30,
		Location: "Drawer C3",
	}

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO items`).
		WithArgs(it.Name, it.Category, it.Quantity, pgxmock.AnyArg(), pgxmock.AnyArg(), it.Location).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(uuid.New(), now, now))
	expectAuditInsert(mock)
	mock.ExpectCommit()

	err := svc.CreateItem(context.Background(), actorID, it)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, it.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_CreateItem_Validation(t *testing.T) {
	svc, mock := newCatalogService(t)
	defer mock.Close()

	cases := []struct {
		name string
		item models.Item
	}{
		{"missing name", models.Item{Category: "Sensor", Location: "Drawer C3"}},
		{"missing category", models.Item{Name: "Sensor", Location: "Drawer C3"}},
		{"missing location", models.Item{Name: "Sensor", Category: "Sensor"}},
		{"negative quantity", models.Item{Name: "Sensor", Category: "Sensor", Location: "Drawer C3", Quantity: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := tc.item
			err := svc.CreateItem(context.Background(), uuid.New(), &it)
			require.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}
	// Validation fails before any transaction is opened.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_UpdateItem_NegativeQuantity(t *testing.T) {
	svc, mock := newCatalogService(t)
	defer mock.Close()

	qty := -3
	_, err := svc.UpdateItem(context.Background(), uuid.New(), uuid.New(), ItemPatch{Quantity: &qty})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_UpdateItem_OK(t *testing.T) {
	svc, mock := newCatalogService(t)
	defer mock.Close()

	actorID := uuid.New()
	itemID := uuid.New()
	newQty := 12

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1 FOR UPDATE`).
		WithArgs(itemID).
		WillReturnRows(itemRows(itemID, "Arduino Uno R3", 10))
	mock.ExpectQuery(`UPDATE items\s+SET name = \$2, category = \$3, quantity = \$4`).
		WithArgs(itemID, "Arduino Uno R3", "Microcontroller", newQty, pgxmock.AnyArg(), pgxmock.AnyArg(), "Cabinet A, Shelf 2").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	expectAuditInsert(mock)
	mock.ExpectCommit()

	it, err := svc.UpdateItem(context.Background(), actorID, itemID, ItemPatch{Quantity: &newQty})
	require.NoError(t, err)
	require.Equal(t, newQty, it.Quantity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_DeleteItem_BlockedByOpenRequests(t *testing.T) {
	svc, mock := newCatalogService(t)
	defer mock.Close()

	itemID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1 FOR UPDATE`).
		WithArgs(itemID).
		WillReturnRows(itemRows(itemID, "Arduino Uno R3", 10))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM requests`).
		WithArgs(itemID, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := svc.DeleteItem(context.Background(), uuid.New(), itemID)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_DeleteItem_OK(t *testing.T) {
	svc, mock := newCatalogService(t)
	defer mock.Close()

	itemID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1 FOR UPDATE`).
		WithArgs(itemID).
		WillReturnRows(itemRows(itemID, "Arduino Uno R3", 10))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM requests`).
		WithArgs(itemID, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	expectAuditInsert(mock)
	mock.ExpectExec(`DELETE FROM items WHERE id = \$1`).
		WithArgs(itemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := svc.DeleteItem(context.Background(), uuid.New(), itemID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
