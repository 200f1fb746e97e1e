// Package postgres implements the repositories on PostgreSQL. Reference
// lists are stored as text[] columns holding ObjectId hex strings.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"job-board-backend/internal/models"
	"job-board-backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const uniqueViolation = "23505"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id             TEXT PRIMARY KEY,
		first_name     TEXT NOT NULL,
		last_name      TEXT NOT NULL,
		email          TEXT NOT NULL UNIQUE,
		password_hash  TEXT NOT NULL,
		photo_url      TEXT,
		photo_filename TEXT,
		jobs           TEXT[] NOT NULL DEFAULT '{}',
		friends        TEXT[] NOT NULL DEFAULT '{}',
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS job_posts (
		id                    TEXT PRIMARY KEY,
		job_title             TEXT NOT NULL,
		company_name          TEXT NOT NULL,
		minimum_salary        DOUBLE PRECISION NOT NULL,
		maximum_salary        DOUBLE PRECISION NOT NULL,
		salary_type           TEXT NOT NULL,
		job_location          TEXT NOT NULL,
		company_address       TEXT NOT NULL DEFAULT '',
		job_posting_date      TIMESTAMPTZ NOT NULL,
		experience_level      TEXT NOT NULL,
		employment_type       TEXT NOT NULL,
		job_description       TEXT NOT NULL,
		company_logo_url      TEXT,
		company_logo_filename TEXT,
		posted_by             TEXT NOT NULL,
		user_id               TEXT NOT NULL,
		applicants            TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS job_posts_user_id_idx ON job_posts (user_id)`,
	`CREATE TABLE IF NOT EXISTS applicants (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		email           TEXT NOT NULL,
		cover_letter    TEXT NOT NULL,
		phone           TEXT NOT NULL,
		address         TEXT NOT NULL,
		position        TEXT NOT NULL,
		resume_url      TEXT NOT NULL,
		resume_filename TEXT NOT NULL,
		job_post_id     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS applicants_job_post_id_idx ON applicants (job_post_id)`,
}

// Migrate creates the tables when they do not exist
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// New creates the repositories on db
func New(db *pgxpool.Pool) *repository.Store {
	return &repository.Store{
		Users:      NewUserRepository(db),
		JobPosts:   NewJobPostRepository(db),
		Applicants: NewApplicantRepository(db),
		Ping:       db.Ping,
		Close: func(context.Context) error {
			db.Close()
			return nil
		},
	}
}

// translate maps driver errors onto repository sentinels
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateKey
	}
	return err
}

// requireRow reports ErrNotFound when a write matched nothing
func requireRow(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

func parseIDs(raw []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, len(raw))
	for i, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, fmt.Errorf("invalid stored id %q: %w", s, err)
		}
		out[i] = id
	}
	return out, nil
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid stored id %q: %w", raw, err)
	}
	return id, nil
}

func fileColumns(f *models.FileInfo) (*string, *string) {
	if f == nil {
		return nil, nil
	}
	return &f.URL, &f.Filename
}

func fileFromColumns(url, filename *string) *models.FileInfo {
	if url == nil {
		return nil
	}
	info := &models.FileInfo{URL: *url}
	if filename != nil {
		info.Filename = *filename
	}
	return info
}
