package postgres

import (
	"context"
	"fmt"

	"job-board-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const applicantColumns = `id, name, email, cover_letter, phone, address, position,
	resume_url, resume_filename, job_post_id`

// ApplicantRepository handles database operations for applicants
type ApplicantRepository struct {
	db *pgxpool.Pool
}

// NewApplicantRepository creates a new applicant repository
func NewApplicantRepository(db *pgxpool.Pool) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

func scanApplicant(row pgx.Row) (*models.Applicant, error) {
	var (
		applicant models.Applicant
		id, jobID string
	)
	err := row.Scan(
		&id, &applicant.Name, &applicant.Email, &applicant.CoverLetter, &applicant.Phone,
		&applicant.Address, &applicant.Position, &applicant.Resume.URL, &applicant.Resume.Filename, &jobID,
	)
	if err != nil {
		return nil, err
	}

	if applicant.ID, err = parseID(id); err != nil {
		return nil, err
	}
	if applicant.JobPost, err = parseID(jobID); err != nil {
		return nil, err
	}
	return &applicant, nil
}

// Create creates a new applicant
func (r *ApplicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	query := `
		INSERT INTO applicants (` + applicantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		applicant.ID.Hex(), applicant.Name, applicant.Email, applicant.CoverLetter, applicant.Phone,
		applicant.Address, applicant.Position, applicant.Resume.URL, applicant.Resume.Filename,
		applicant.JobPost.Hex(),
	)
	if err != nil {
		return fmt.Errorf("failed to create applicant: %w", translate(err))
	}
	return nil
}

// GetByID retrieves an applicant by ID
func (r *ApplicantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE id = $1`
	applicant, err := scanApplicant(r.db.QueryRow(ctx, query, id.Hex()))
	if err != nil {
		return nil, fmt.Errorf("failed to get applicant: %w", translate(err))
	}
	return applicant, nil
}

// GetByIDs retrieves the existing applicants among ids, in the order of ids
func (r *ApplicantRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Applicant, error) {
	if len(ids) == 0 {
		return []*models.Applicant{}, nil
	}
	query := `
		SELECT ` + applicantColumns + `
		FROM applicants
		WHERE id = ANY($1)
		ORDER BY array_position($1, id)
	`
	rows, err := r.db.Query(ctx, query, hexIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get applicants: %w", err)
	}
	defer rows.Close()

	applicants := make([]*models.Applicant, 0, len(ids))
	for rows.Next() {
		applicant, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		applicants = append(applicants, applicant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applicants: %w", err)
	}
	return applicants, nil
}

// Delete deletes an applicant by ID
func (r *ApplicantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM applicants WHERE id = $1`, id.Hex())
	if err != nil {
		return fmt.Errorf("failed to delete applicant: %w", err)
	}
	if err := requireRow(tag); err != nil {
		return fmt.Errorf("applicant not found: %w", err)
	}
	return nil
}

// DeleteByJobPost deletes every applicant of a job post
func (r *ApplicantRepository) DeleteByJobPost(ctx context.Context, jobID primitive.ObjectID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM applicants WHERE job_post_id = $1`, jobID.Hex())
	if err != nil {
		return 0, fmt.Errorf("failed to delete applicants of job post: %w", err)
	}
	return tag.RowsAffected(), nil
}
