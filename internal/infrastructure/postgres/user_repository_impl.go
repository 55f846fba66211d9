package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	"github.com/surershelf/task-manager-api/internal/domain/repository"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, birth_date, avatar_url, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, birth_date, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.BirthDate, u.AvatarURL)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ExistsByEmailExcept(ctx context.Context, email, id string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`, email, id).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	row := r.db.Pool.QueryRow(ctx, `
		UPDATE users
		SET name = $1, email = $2, birth_date = $3, updated_at = now()
		WHERE id = $4
		RETURNING avatar_url, updated_at
	`, u.Name, u.Email, u.BirthDate, u.ID)

	if err := row.Scan(&u.AvatarURL, &u.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), isInvalidInput(err):
			return repository.ErrNotFound
		case isUniqueViolation(err):
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, url string) error {
	return r.execOne(ctx, `UPDATE users SET avatar_url = $1, updated_at = now() WHERE id = $2`, url, id)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.execOne(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, id)
}

// execOne runs a statement that must touch one row; zero rows means ErrNotFound.
func (r *UserRepository) execOne(ctx context.Context, sql string, args ...any) error {
	res, err := r.db.Pool.Exec(ctx, sql, args...)
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

// Delete removes the user; activities and progress go with it through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.BirthDate, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidInput(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
