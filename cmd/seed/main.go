package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/surershelf/task-manager-api/config"
	"github.com/surershelf/task-manager-api/pkg/helpers"
)

// seed inserts a demo user with one daily activity. Safe to run repeatedly.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer pool.Close()

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, updated_at = now()
		RETURNING id
	`, uuid.NewString(), name, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	log.Printf("seeded user: id=%s email=%s password=%s", userID, email, password)

	start := helpers.DateOf(time.Now().In(cfg.Location()))
	tag, err := pool.Exec(ctx, `
		INSERT INTO activities (id, user_id, title, description, frequency, start_date)
		SELECT $1, $2, 'Morning walk', 'Walk for 30 minutes', 'DAILY', $3
		WHERE NOT EXISTS (
			SELECT 1 FROM activities WHERE user_id = $2 AND lower(title) = 'morning walk' AND active
		)
	`, uuid.NewString(), userID, start)
	if err != nil {
		log.Fatalf("failed to seed activity: %v", err)
	}
	log.Printf("activities inserted: %d", tag.RowsAffected())
}
