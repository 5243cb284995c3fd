package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lablink/backend/internal/errs"
	"github.com/lablink/backend/internal/models"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Create_OK(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(d)

	u := &models.User{
		Username:     "prof_wilson",
		Email:        "wilson@university.edu",
		PasswordHash: "$2a$12$hash",
		Role:         models.RoleApprover,
	}
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.Username, u.Email, u.PasswordHash, u.Role).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))

	err := r.Create(context.Background(), u)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateUsername(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(d)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("taken", "taken@university.edu", "$2a$12$hash", models.RoleRequester).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := r.Create(context.Background(), &models.User{
		Username:     "taken",
		Email:        "taken@university.edu",
		PasswordHash: "$2a$12$hash",
		Role:         models.RoleRequester,
	})
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(d)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, role, created_at\s+FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}))

	_, err := r.GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
