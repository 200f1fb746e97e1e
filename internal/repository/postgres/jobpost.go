package postgres

import (
	"context"
	"fmt"

	"job-board-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const jobPostColumns = `id, job_title, company_name, minimum_salary, maximum_salary, salary_type,
	job_location, company_address, job_posting_date, experience_level, employment_type,
	job_description, company_logo_url, company_logo_filename, posted_by, user_id, applicants`

// JobPostRepository handles database operations for job posts
type JobPostRepository struct {
	db *pgxpool.Pool
}

// NewJobPostRepository creates a new job post repository
func NewJobPostRepository(db *pgxpool.Pool) *JobPostRepository {
	return &JobPostRepository{db: db}
}

func scanJobPost(row pgx.Row) (*models.JobPost, error) {
	var (
		job               models.JobPost
		id, userID        string
		logoURL, logoName *string
		applicants        []string
	)
	err := row.Scan(
		&id, &job.JobTitle, &job.CompanyName, &job.MinimumSalary, &job.MaximumSalary, &job.SalaryType,
		&job.JobLocation, &job.CompanyAddress, &job.JobPostingDate, &job.ExperienceLevel, &job.EmploymentType,
		&job.JobDescription, &logoURL, &logoName, &job.PostedBy, &userID, &applicants,
	)
	if err != nil {
		return nil, err
	}

	if job.ID, err = parseID(id); err != nil {
		return nil, err
	}
	if job.UserID, err = parseID(userID); err != nil {
		return nil, err
	}
	if job.Applicants, err = parseIDs(applicants); err != nil {
		return nil, err
	}
	job.CompanyLogo = fileFromColumns(logoURL, logoName)
	return &job, nil
}

// Create creates a new job post
func (r *JobPostRepository) Create(ctx context.Context, job *models.JobPost) error {
	query := `
		INSERT INTO job_posts (` + jobPostColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	logoURL, logoName := fileColumns(job.CompanyLogo)
	_, err := r.db.Exec(ctx, query,
		job.ID.Hex(), job.JobTitle, job.CompanyName, job.MinimumSalary, job.MaximumSalary, job.SalaryType,
		job.JobLocation, job.CompanyAddress, job.JobPostingDate, job.ExperienceLevel, job.EmploymentType,
		job.JobDescription, logoURL, logoName, job.PostedBy, job.UserID.Hex(), hexIDs(job.Applicants),
	)
	if err != nil {
		return fmt.Errorf("failed to create job post: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a job post by ID
func (r *JobPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.JobPost, error) {
	query := `SELECT ` + jobPostColumns + ` FROM job_posts WHERE id = $1`
	job, err := scanJobPost(r.db.QueryRow(ctx, query, id.Hex()))
	if err != nil {
		return nil, fmt.Errorf("failed to get job post: %w", translate(err))
	}
	return job, nil
}

func (r *JobPostRepository) query(ctx context.Context, query string, args ...any) ([]*models.JobPost, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get job posts: %w", err)
	}
	defer rows.Close()

	jobs := make([]*models.JobPost, 0)
	for rows.Next() {
		job, err := scanJobPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job post: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job posts: %w", err)
	}
	return jobs, nil
}

// List retrieves all job posts
func (r *JobPostRepository) List(ctx context.Context) ([]*models.JobPost, error) {
	return r.query(ctx, `SELECT `+jobPostColumns+` FROM job_posts ORDER BY job_posting_date, id`)
}

// ListByUser retrieves the job posts owned by a user
func (r *JobPostRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.JobPost, error) {
	query := `SELECT ` + jobPostColumns + ` FROM job_posts WHERE user_id = $1 ORDER BY job_posting_date, id`
	return r.query(ctx, query, userID.Hex())
}

// Update updates the editable fields of a job post
func (r *JobPostRepository) Update(ctx context.Context, job *models.JobPost) error {
	query := `
		UPDATE job_posts
		SET job_title = $1, company_name = $2, minimum_salary = $3, maximum_salary = $4,
			salary_type = $5, job_location = $6, company_address = $7, experience_level = $8,
			employment_type = $9, job_description = $10, company_logo_url = $11,
			company_logo_filename = $12, posted_by = $13
		WHERE id = $14
	`
	logoURL, logoName := fileColumns(job.CompanyLogo)
	tag, err := r.db.Exec(ctx, query,
		job.JobTitle, job.CompanyName, job.MinimumSalary, job.MaximumSalary,
		job.SalaryType, job.JobLocation, job.CompanyAddress, job.ExperienceLevel,
		job.EmploymentType, job.JobDescription, logoURL, logoName, job.PostedBy, job.ID.Hex(),
	)
	if err != nil {
		return fmt.Errorf("failed to update job post: %w", err)
	}
	if err := requireRow(tag); err != nil {
		return fmt.Errorf("job post not found: %w", err)
	}
	return nil
}

// Delete deletes a job post by ID
func (r *JobPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM job_posts WHERE id = $1`, id.Hex())
	if err != nil {
		return fmt.Errorf("failed to delete job post: %w", err)
	}
	if err := requireRow(tag); err != nil {
		return fmt.Errorf("job post not found: %w", err)
	}
	return nil
}

// AddApplicant appends an applicant to the job post's applicant list
func (r *JobPostRepository) AddApplicant(ctx context.Context, jobID, applicantID primitive.ObjectID) error {
	query := `UPDATE job_posts SET applicants = array_append(applicants, $1) WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, applicantID.Hex(), jobID.Hex())
	if err != nil {
		return fmt.Errorf("failed to add applicant to job post: %w", err)
	}
	if err := requireRow(tag); err != nil {
		return fmt.Errorf("job post not found: %w", err)
	}
	return nil
}

// RemoveApplicant removes an applicant from the job post's applicant list
func (r *JobPostRepository) RemoveApplicant(ctx context.Context, jobID, applicantID primitive.ObjectID) error {
	query := `UPDATE job_posts SET applicants = array_remove(applicants, $1) WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, applicantID.Hex(), jobID.Hex())
	if err != nil {
		return fmt.Errorf("failed to remove applicant from job post: %w", err)
	}
	if err := requireRow(tag); err != nil {
		return fmt.Errorf("job post not found: %w", err)
	}
	return nil
}
