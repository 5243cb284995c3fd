package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lablink/backend/internal/models"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestAuditRepo_Append_OK(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewAuditRepo(d)

	actorID := uuid.New()
	entityID := uuid.New()
	e := &models.AuditEntry{
		ActorID:    &actorID,
		Action:     models.ActionSubmit,
		EntityType: models.EntityRequest,
		EntityID:   &entityID,
		Detail:     map[string]any{"item_name": "Arduino Uno R3", "quantity": 2},
	}

	mock.ExpectQuery(`INSERT INTO audit_log \(actor_id, action, entity_type, entity_id, detail\)`).
		WithArgs(&actorID, models.ActionSubmit, models.EntityRequest, &entityID, e.Detail).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))

	err := r.Append(context.Background(), mock, e)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, e.ID)
	require.False(t, e.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Query_ItemNameFilter(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewAuditRepo(d)

	name := "arduino"
	mock.ExpectQuery(`FROM audit_log\s+WHERE detail->>'item_name' ILIKE \$1`).
		WithArgs("%arduino%", 100, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "actor_id", "action", "entity_type", "entity_id", "detail", "created_at"}))

	_, err := r.Query(context.Background(), AuditFilter{ItemNameLike: &name, Limit: 100})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
