package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board-backend/internal/apperror"
	"job-board-backend/internal/metrics"
	"job-board-backend/internal/models"
	"job-board-backend/internal/repository"
	"job-board-backend/internal/validation"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func stringProperty(minLength, maxLength int) map[string]interface{} {
	p := map[string]interface{}{"type": "string"}
	if minLength > 0 {
		p["minLength"] = minLength
	}
	if maxLength > 0 {
		p["maxLength"] = maxLength
	}
	return p
}

var jobPostPatchSchema = validation.PatchSchema(map[string]interface{}{
	"jobTitle":        stringProperty(3, 50),
	"companyName":     stringProperty(3, 50),
	"minimumSalary":   map[string]interface{}{"type": "number", "minimum": 0},
	"maximumSalary":   map[string]interface{}{"type": "number", "minimum": 0},
	"salaryType":      stringProperty(1, 0),
	"jobLocation":     stringProperty(1, 0),
	"companyAddress":  stringProperty(0, 0),
	"experienceLevel": stringProperty(1, 0),
	"employmentType":  stringProperty(1, 0),
	"jobDescription":  stringProperty(1, 0),
	"postedBy":        map[string]interface{}{"type": "string", "format": "email", "maxLength": 50},
})

// JobPostInput holds the editable fields of a job post
type JobPostInput struct {
	JobTitle        string   `json:"jobTitle" validate:"required,min=3,max=50"`
	CompanyName     string   `json:"companyName" validate:"required,min=3,max=50"`
	MinimumSalary   *float64 `json:"minimumSalary" validate:"required,min=0"`
	MaximumSalary   *float64 `json:"maximumSalary" validate:"required,min=0"`
	SalaryType      string   `json:"salaryType" validate:"required"`
	JobLocation     string   `json:"jobLocation" validate:"required"`
	CompanyAddress  string   `json:"companyAddress"`
	ExperienceLevel string   `json:"experienceLevel" validate:"required"`
	EmploymentType  string   `json:"employmentType" validate:"required"`
	JobDescription  string   `json:"jobDescription" validate:"required"`
	PostedBy        string   `json:"postedBy" validate:"required,email,max=50"`
}

func (in *JobPostInput) validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if *in.MaximumSalary < *in.MinimumSalary {
		return apperror.Conflict("validation failed: maximumSalary must not be less than minimumSalary")
	}
	return nil
}

func inputFromJobPost(job *models.JobPost) JobPostInput {
	minimum, maximum := job.MinimumSalary, job.MaximumSalary
	return JobPostInput{
		JobTitle:        job.JobTitle,
		CompanyName:     job.CompanyName,
		MinimumSalary:   &minimum,
		MaximumSalary:   &maximum,
		SalaryType:      job.SalaryType,
		JobLocation:     job.JobLocation,
		CompanyAddress:  job.CompanyAddress,
		ExperienceLevel: job.ExperienceLevel,
		EmploymentType:  job.EmploymentType,
		JobDescription:  job.JobDescription,
		PostedBy:        job.PostedBy,
	}
}

type jobPostPatch struct {
	JobTitle        *string  `json:"jobTitle"`
	CompanyName     *string  `json:"companyName"`
	MinimumSalary   *float64 `json:"minimumSalary"`
	MaximumSalary   *float64 `json:"maximumSalary"`
	SalaryType      *string  `json:"salaryType"`
	JobLocation     *string  `json:"jobLocation"`
	CompanyAddress  *string  `json:"companyAddress"`
	ExperienceLevel *string  `json:"experienceLevel"`
	EmploymentType  *string  `json:"employmentType"`
	JobDescription  *string  `json:"jobDescription"`
	PostedBy        *string  `json:"postedBy"`
}

func (p *jobPostPatch) apply(job *models.JobPost) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&job.JobTitle, p.JobTitle)
	setString(&job.CompanyName, p.CompanyName)
	setString(&job.SalaryType, p.SalaryType)
	setString(&job.JobLocation, p.JobLocation)
	setString(&job.CompanyAddress, p.CompanyAddress)
	setString(&job.ExperienceLevel, p.ExperienceLevel)
	setString(&job.EmploymentType, p.EmploymentType)
	setString(&job.JobDescription, p.JobDescription)
	setString(&job.PostedBy, p.PostedBy)
	if p.MinimumSalary != nil {
		job.MinimumSalary = *p.MinimumSalary
	}
	if p.MaximumSalary != nil {
		job.MaximumSalary = *p.MaximumSalary
	}
}

// JobPostService handles job post business logic
type JobPostService struct {
	users            repository.UserRepository
	jobs             repository.JobPostRepository
	applicants       repository.ApplicantRepository
	uploader         FileUploader
	cascadeApplicant bool
}

// NewJobPostService creates a new job post service. With cascade set,
// deleting a job post also deletes its applicants.
func NewJobPostService(store *repository.Store, uploader FileUploader, cascade bool) *JobPostService {
	return &JobPostService{
		users:            store.Users,
		jobs:             store.JobPosts,
		applicants:       store.Applicants,
		uploader:         uploader,
		cascadeApplicant: cascade,
	}
}

func callerID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperror.Unauthorized("Invalid token")
	}
	return id, nil
}

// Create publishes a job post owned by the caller and returns every job post
func (s *JobPostService) Create(ctx context.Context, rawCallerID string, in JobPostInput, logo *Upload) ([]*models.JobPost, error) {
	ownerID, err := callerID(rawCallerID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}

	if err := in.validate(); err != nil {
		return nil, err
	}

	job := &models.JobPost{
		ID:              primitive.NewObjectID(),
		JobTitle:        in.JobTitle,
		CompanyName:     in.CompanyName,
		MinimumSalary:   *in.MinimumSalary,
		MaximumSalary:   *in.MaximumSalary,
		SalaryType:      in.SalaryType,
		JobLocation:     in.JobLocation,
		CompanyAddress:  in.CompanyAddress,
		JobPostingDate:  time.Now().UTC(),
		ExperienceLevel: in.ExperienceLevel,
		EmploymentType:  in.EmploymentType,
		JobDescription:  in.JobDescription,
		PostedBy:        in.PostedBy,
		UserID:          owner.ID,
		Applicants:      []primitive.ObjectID{},
	}

	if logo != nil {
		if job.CompanyLogo, err = s.uploader.Upload(ctx, FolderLogos, logo); err != nil {
			return nil, err
		}
	}

	err = pairedWrite(ctx, relationUserJobs,
		func(ctx context.Context) error { return s.jobs.Create(ctx, job) },
		func(ctx context.Context) error { return s.users.AddJob(ctx, owner.ID, job.ID) },
		func(ctx context.Context) error { return s.jobs.Delete(ctx, job.ID) },
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job post: %w", err)
	}

	log.Info().Str("job_id", job.ID.Hex()).Str("user_id", owner.ID.Hex()).Msg("Job post created")

	return s.all(ctx)
}

func (s *JobPostService) all(ctx context.Context) ([]*models.JobPost, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list job posts: %w", err)
	}
	return jobs, nil
}

// List returns every job post with its posting date rendered
func (s *JobPostService) List(ctx context.Context) ([]models.ListedJobPost, error) {
	jobs, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	listed := make([]models.ListedJobPost, 0, len(jobs))
	for _, job := range jobs {
		listed = append(listed, models.NewListedJobPost(job))
	}
	return listed, nil
}

// Get returns one job post
func (s *JobPostService) Get(ctx context.Context, rawID string) (*models.JobPost, error) {
	id, err := validation.ObjectID(rawID, "jobId")
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Job not found")
	}
	return job, nil
}

// ListMine returns the caller's job posts with the owner resolved
func (s *JobPostService) ListMine(ctx context.Context, rawCallerID string) ([]models.OwnedJobPost, error) {
	ownerID, err := callerID(rawCallerID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}

	jobs, err := s.jobs.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job posts: %w", err)
	}

	owned := make([]models.OwnedJobPost, 0, len(jobs))
	for _, job := range jobs {
		owned = append(owned, models.OwnedJobPost{JobPost: *job, UserID: owner})
	}
	return owned, nil
}

// Update applies a partial update and an optional new logo
func (s *JobPostService) Update(ctx context.Context, rawID string, patch map[string]interface{}, logo *Upload) (*models.JobPost, error) {
	job, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if err := validation.Patch(patch, jobPostPatchSchema); err != nil {
		return nil, err
	}
	var p jobPostPatch
	if err := decodePatch(patch, &p); err != nil {
		return nil, err
	}
	p.apply(job)

	merged := inputFromJobPost(job)
	if err := merged.validate(); err != nil {
		return nil, err
	}

	if logo != nil {
		if job.CompanyLogo, err = s.uploader.Upload(ctx, FolderLogos, logo); err != nil {
			return nil, err
		}
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, fmt.Errorf("failed to update job post: %w", err)
	}

	return job, nil
}

// Delete removes a job post and its id from the owner's job list
func (s *JobPostService) Delete(ctx context.Context, rawID string) error {
	job, err := s.Get(ctx, rawID)
	if err != nil {
		return err
	}

	err = pairedWrite(ctx, relationUserJobs,
		func(ctx context.Context) error { return s.jobs.Delete(ctx, job.ID) },
		func(ctx context.Context) error {
			err := s.users.RemoveJob(ctx, job.UserID, job.ID)
			if errors.Is(err, repository.ErrNotFound) {
				log.Warn().Str("job_id", job.ID.Hex()).Str("user_id", job.UserID.Hex()).Msg("Owner of deleted job post not found")
				return nil
			}
			return err
		},
		func(ctx context.Context) error { return s.jobs.Create(ctx, job) },
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return fmt.Errorf("failed to delete job post: %w", err)
	}

	if s.cascadeApplicant {
		n, err := s.applicants.DeleteByJobPost(ctx, job.ID)
		if err != nil {
			metrics.IntegrityViolationsTotal.WithLabelValues(relationJobApplicants).Inc()
			return fmt.Errorf("failed to delete applicants of job post: %w", err)
		}
		log.Info().Str("job_id", job.ID.Hex()).Int64("applicants", n).Msg("Applicants of deleted job post removed")
	}

	log.Info().Str("job_id", job.ID.Hex()).Msg("Job post deleted")
	return nil
}
