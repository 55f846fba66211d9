package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	"github.com/surershelf/task-manager-api/internal/domain/repository"
)

type ProgressRepository struct {
	db *DB
}

func NewProgressRepository(db *DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressSelect = `
	SELECT p.id, p.activity_id, a.title, p.finish_date, p.status, p.created_at
	FROM progress p
	JOIN activities a ON a.id = p.activity_id`

// Create relies on UNIQUE (activity_id, finish_date): a concurrent insert for the
// same day returns no row instead of failing.
func (r *ProgressRepository) Create(ctx context.Context, p *entity.Progress) error {
	row := r.db.Pool.QueryRow(ctx, `
		INSERT INTO progress (id, activity_id, finish_date, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (activity_id, finish_date) DO NOTHING
		RETURNING created_at
	`, p.ID, p.ActivityID, p.FinishDate, p.Status.String())

	if err := row.Scan(&p.CreatedAt); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return repository.ErrDuplicate
		case isForeignKeyViolation(err), isInvalidInput(err):
			return repository.ErrMissingParent
		}
		return err
	}
	return nil
}

func (r *ProgressRepository) ExistsForDate(ctx context.Context, activityID string, day time.Time) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM progress WHERE activity_id = $1 AND finish_date = $2)`,
		activityID, day).Scan(&exists)
	if isInvalidInput(err) {
		return false, nil
	}
	return exists, err
}

func (r *ProgressRepository) GetByID(ctx context.Context, id string) (*entity.Progress, error) {
	return scanProgress(r.db.Pool.QueryRow(ctx, progressSelect+` WHERE p.id = $1`, id))
}

func (r *ProgressRepository) ListByActivity(ctx context.Context, activityID string) ([]entity.Progress, error) {
	return r.list(ctx, progressSelect+`
		WHERE p.activity_id = $1
		ORDER BY p.finish_date DESC`, activityID)
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]entity.Progress, error) {
	return r.list(ctx, progressSelect+`
		WHERE a.user_id = $1
		ORDER BY p.finish_date DESC, p.created_at DESC`, userID)
}

func (r *ProgressRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]entity.Progress, error) {
	return r.list(ctx, progressSelect+`
		WHERE a.user_id = $1 AND p.finish_date BETWEEN $2 AND $3
		ORDER BY p.finish_date DESC, p.created_at DESC`, userID, from, to)
}

func (r *ProgressRepository) LatestByActivity(ctx context.Context, activityID string) (*entity.Progress, error) {
	return scanProgress(r.db.Pool.QueryRow(ctx, progressSelect+`
		WHERE p.activity_id = $1
		ORDER BY p.finish_date DESC
		LIMIT 1`, activityID))
}

func (r *ProgressRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Pool.Exec(ctx, `DELETE FROM progress WHERE id = $1`, id)
	if err != nil {
		if isInvalidInput(err) {
			return repository.ErrNotFound
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByUserAndStatus counts the user's progress rows in one pass.
func (r *ProgressRepository) CountByUserAndStatus(ctx context.Context, userID string) (int64, int64, error) {
	var finished, started int64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT count(*) FILTER (WHERE p.status = 'FINISHED'),
		       count(*) FILTER (WHERE p.status = 'STARTED')
		FROM progress p
		JOIN activities a ON a.id = p.activity_id
		WHERE a.user_id = $1
	`, userID).Scan(&finished, &started)
	if err != nil {
		if isInvalidInput(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	return finished, started, nil
}

func (r *ProgressRepository) list(ctx context.Context, sql string, args ...any) ([]entity.Progress, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		if isInvalidInput(err) {
			return []entity.Progress{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Progress, 0)
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanProgress(row pgx.Row) (*entity.Progress, error) {
	var (
		p      entity.Progress
		status string
	)
	if err := row.Scan(&p.ID, &p.ActivityID, &p.ActivityTitle, &p.FinishDate, &status, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidInput(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	st, err := entity.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	p.Status = st
	return &p, nil
}

var _ repository.ProgressRepository = (*ProgressRepository)(nil)
