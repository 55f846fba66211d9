package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	"github.com/surershelf/task-manager-api/internal/domain/repository"
)

type ActivityRepository struct {
	db *DB
}

func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, user_id, title, description, frequency, start_date, active, created_at, updated_at`

// Create inserts a. ErrMissingParent when the owner does not exist.
func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	row := r.db.Pool.QueryRow(ctx, `
		INSERT INTO activities (id, user_id, title, description, frequency, start_date, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, a.ID, a.UserID, a.Title, a.Description, a.Frequency.String(), a.StartDate, a.Active)

	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrMissingParent
		}
		return err
	}
	return nil
}

func (r *ActivityRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Activity, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1 AND user_id = $2`, id, userID)
	return scanActivity(row)
}

func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)
	return scanActivity(row)
}

func (r *ActivityRepository) ListActiveByUser(ctx context.Context, userID string) ([]entity.Activity, error) {
	return r.list(ctx, `
		SELECT `+activityColumns+` FROM activities
		WHERE user_id = $1 AND active
		ORDER BY created_at, id
	`, userID)
}

func (r *ActivityRepository) ListActiveByUserAndFrequency(ctx context.Context, userID string, f entity.Frequency) ([]entity.Activity, error) {
	return r.list(ctx, `
		SELECT `+activityColumns+` FROM activities
		WHERE user_id = $1 AND active AND frequency = $2
		ORDER BY created_at, id
	`, userID, f.String())
}

func (r *ActivityRepository) FindSimilarActiveTitles(ctx context.Context, userID, title string) ([]entity.Activity, error) {
	return r.list(ctx, `
		SELECT `+activityColumns+` FROM activities
		WHERE user_id = $1 AND active
		  AND (position(lower($2) in lower(title)) > 0 OR position(lower(title) in lower($2)) > 0)
	`, userID, title)
}

func (r *ActivityRepository) Update(ctx context.Context, a *entity.Activity) error {
	row := r.db.Pool.QueryRow(ctx, `
		UPDATE activities
		SET title = $1, description = $2, frequency = $3, start_date = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING updated_at
	`, a.Title, a.Description, a.Frequency.String(), a.StartDate, a.ID, a.UserID)

	if err := row.Scan(&a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidInput(err) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *ActivityRepository) SetActive(ctx context.Context, id, userID string, active bool) error {
	res, err := r.db.Pool.Exec(ctx,
		`UPDATE activities SET active = $1, updated_at = now() WHERE id = $2 AND user_id = $3`,
		active, id, userID)
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

func (r *ActivityRepository) CountByUser(ctx context.Context, userID string) (int, int, error) {
	var total, active int64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE active)
		FROM activities WHERE user_id = $1
	`, userID).Scan(&total, &active)
	if err != nil {
		return 0, 0, err
	}
	return int(total), int(active), nil
}

func (r *ActivityRepository) list(ctx context.Context, sql string, args ...any) ([]entity.Activity, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		if isInvalidInput(err) {
			return []entity.Activity{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	var (
		a    entity.Activity
		freq string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &freq, &a.StartDate, &a.Active,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidInput(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	f, err := entity.ParseFrequency(freq)
	if err != nil {
		return nil, err
	}
	a.Frequency = f
	return &a, nil
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
