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

var requestWithItemCols = []string{"id", "requester_id", "item_id", "quantity", "status",
	"decision_note", "created_at", "decided_at", "decided_by", "closed_at", "name", "category"}

func TestRequestRepo_ListWithItem_ClampsLimit(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewRequestRepo(d)

	// Non-positive limits fall back to the default page size, over-large
	// limits are capped at the maximum.
	cases := []struct {
		limit     int
		effective int
	}{
		{0, 20},
		{-5, 20},
		{50, 50},
		{500, 100},
	}
	for _, tc := range cases {
		mock.ExpectQuery(`FROM requests r\s+LEFT JOIN items i ON i\.id = r\.item_id`).
			WithArgs(tc.effective, 0).
			WillReturnRows(pgxmock.NewRows(requestWithItemCols))

		_, err := r.ListWithItem(context.Background(), RequestFilter{Limit: tc.limit})
		require.NoError(t, err, "limit %d", tc.limit)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_ListWithItem_SurvivesDeletedItem(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewRequestRepo(d)

	// Requests outlive their item; the join yields NULL name/category then.
	mock.ExpectQuery(`FROM requests r\s+LEFT JOIN items i ON i\.id = r\.item_id`).
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(requestWithItemCols).
			AddRow(uuid.New(), uuid.New(), uuid.New(), 2, models.RequestStatusClosed,
				nil, time.Now(), nil, nil, nil, nil, nil))

	reqs, err := r.ListWithItem(context.Background(), RequestFilter{})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	require.Nil(t, reqs[0].ItemName)
	require.Nil(t, reqs[0].ItemCategory)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_CountOpenByItem(t *testing.T) {
	d, mock := newDB(t)
	defer mock.Close()
	r := NewRequestRepo(d)

	itemID := uuid.New()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM requests\s+WHERE item_id = \$1 AND status = ANY\(\$2\)`).
		WithArgs(itemID, []string{models.RequestStatusPending, models.RequestStatusAccepted}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	n, err := r.CountOpenByItem(context.Background(), mock, itemID)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
