package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	"github.com/surershelf/task-manager-api/internal/domain/repository"
)

var progressCols = []string{"id", "activity_id", "title", "finish_date", "status", "created_at"}

func TestProgressRepository_Create_OnConflict(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProgressRepository(db)
	ctx := context.Background()
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	p := &entity.Progress{ID: "p-1", ActivityID: "a-1", FinishDate: day, Status: entity.StatusFinished}

	mock.ExpectQuery(`ON CONFLICT \(activity_id, finish_date\) DO NOTHING`).
		WithArgs("p-1", "a-1", day, "FINISHED").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))
	require.NoError(t, r.Create(ctx, p))
	require.Equal(t, now, p.CreatedAt)

	// the conflicting insert returns no row
	mock.ExpectQuery(`ON CONFLICT \(activity_id, finish_date\) DO NOTHING`).
		WithArgs("p-1", "a-1", day, "FINISHED").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}))
	require.ErrorIs(t, r.Create(ctx, p), repository.ErrDuplicate)

	mock.ExpectQuery(`ON CONFLICT \(activity_id, finish_date\) DO NOTHING`).
		WithArgs("p-1", "a-1", day, "FINISHED").
		WillReturnError(&pgconn.PgError{Code: "23503"})
	require.ErrorIs(t, r.Create(ctx, p), repository.ErrMissingParent)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_ExistsForDate(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProgressRepository(db)
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM progress WHERE activity_id = \$1 AND finish_date = \$2\)`).
		WithArgs("a-1", day).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := r.ExistsForDate(context.Background(), "a-1", day)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestProgressRepository_ListByUserBetween(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProgressRepository(db)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE a.user_id = \$1 AND p.finish_date BETWEEN \$2 AND \$3`).
		WithArgs("u-1", from, to).
		WillReturnRows(pgxmock.NewRows(progressCols).
			AddRow("p-2", "a-1", "Run", d1, "FINISHED", d1).
			AddRow("p-1", "a-1", "Run", d2, "STARTED", d2))
	got, err := r.ListByUserBetween(context.Background(), "u-1", from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Run", got[0].ActivityTitle)
	require.Equal(t, entity.StatusStarted, got[1].Status)
}

func TestProgressRepository_LatestByActivity_None(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProgressRepository(db)

	mock.ExpectQuery(`LIMIT 1`).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(progressCols))
	_, err := r.LatestByActivity(context.Background(), "a-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProgressRepository_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProgressRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM progress WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, "p-1"))

	mock.ExpectExec(`DELETE FROM progress WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, "p-1"), repository.ErrNotFound)
}

func TestProgressRepository_CountByUserAndStatus(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProgressRepository(db)

	mock.ExpectQuery(`count\(\*\) FILTER \(WHERE p.status = 'FINISHED'\)`).
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows([]string{"finished", "started"}).AddRow(int64(3), int64(1)))
	f, s, err := r.CountByUserAndStatus(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, int64(3), f)
	require.Equal(t, int64(1), s)
}
