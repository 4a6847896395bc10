package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the paintings and ratings tables when they do not
// exist yet. The ratings table keys on (painting_id, rater_id) so the
// rating upsert can never insert a duplicate row for the same rater.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const paintings = `CREATE TABLE IF NOT EXISTS paintings (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL DEFAULT 'Untitled',
		description TEXT NOT NULL DEFAULT '',
		price       TEXT NOT NULL DEFAULT 'Contact for a personalized quote',
		image       TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT 'Landscape',
		featured    BOOLEAN NOT NULL DEFAULT FALSE,
		seed_rating DOUBLE PRECISION NOT NULL DEFAULT 4,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	const ratings = `CREATE TABLE IF NOT EXISTS ratings (
		painting_id BIGINT NOT NULL REFERENCES paintings(id) ON DELETE CASCADE,
		rater_id    TEXT NOT NULL,
		rating      DOUBLE PRECISION NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (painting_id, rater_id)
	)`
	if _, err := db.ExecContext(ctx, paintings); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, ratings); err != nil {
		return err
	}
	return nil
}
