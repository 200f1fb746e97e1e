package services

import (
	"context"
	"errors"
	"fmt"

	"job-board-backend/internal/apperror"
	"job-board-backend/internal/models"
	"job-board-backend/internal/repository"
	"job-board-backend/internal/validation"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicantInput is the application form for a job post
type ApplicantInput struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	CoverLetter string `json:"coverLetter" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Position    string `json:"position" validate:"required"`
}

// ApplicantService handles applications to job posts
type ApplicantService struct {
	jobs       repository.JobPostRepository
	applicants repository.ApplicantRepository
	uploader   FileUploader
	notifier   Notifier
}

// NewApplicantService creates a new applicant service. A nil notifier
// disables owner notifications.
func NewApplicantService(store *repository.Store, uploader FileUploader, notifier Notifier) *ApplicantService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ApplicantService{
		jobs:       store.JobPosts,
		applicants: store.Applicants,
		uploader:   uploader,
		notifier:   notifier,
	}
}

func (s *ApplicantService) job(ctx context.Context, rawJobID string) (*models.JobPost, error) {
	jobID, err := validation.ObjectID(rawJobID, "jobId")
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFound(err, "Job post not found")
	}
	return job, nil
}

// Apply stores an application with its resume and links it to the job post.
// It returns every job post with applicants resolved.
func (s *ApplicantService) Apply(ctx context.Context, rawJobID string, in ApplicantInput, resume *Upload) ([]models.PopulatedJobPost, error) {
	job, err := s.job(ctx, rawJobID)
	if err != nil {
		return nil, err
	}

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, apperror.Conflict("validation failed: resume is required")
	}

	file, err := s.uploader.Upload(ctx, FolderResumes, resume)
	if err != nil {
		return nil, err
	}

	applicant := &models.Applicant{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Email:       in.Email,
		CoverLetter: in.CoverLetter,
		Phone:       in.Phone,
		Address:     in.Address,
		Position:    in.Position,
		Resume:      *file,
		JobPost:     job.ID,
	}

	err = pairedWrite(ctx, relationJobApplicants,
		func(ctx context.Context) error { return s.applicants.Create(ctx, applicant) },
		func(ctx context.Context) error { return s.jobs.AddApplicant(ctx, job.ID, applicant.ID) },
		func(ctx context.Context) error { return s.applicants.Delete(ctx, applicant.ID) },
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Job post not found")
		}
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	log.Info().Str("job_id", job.ID.Hex()).Str("applicant_id", applicant.ID.Hex()).Msg("Application submitted")

	s.notifier.Notify(job.UserID.Hex(), Event{
		Type:      EventApplicantCreated,
		JobPostID: job.ID.Hex(),
		Applicant: applicant,
	})

	return s.populated(ctx)
}

// populated resolves the applicants of every job post with one lookup
func (s *ApplicantService) populated(ctx context.Context) ([]models.PopulatedJobPost, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list job posts: %w", err)
	}

	var ids []primitive.ObjectID
	for _, job := range jobs {
		ids = append(ids, job.Applicants...)
	}
	applicants, err := s.applicants.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get applicants: %w", err)
	}
	byID := make(map[primitive.ObjectID]*models.Applicant, len(applicants))
	for _, a := range applicants {
		byID[a.ID] = a
	}

	out := make([]models.PopulatedJobPost, 0, len(jobs))
	for _, job := range jobs {
		resolved := make([]*models.Applicant, 0, len(job.Applicants))
		for _, id := range job.Applicants {
			if a, ok := byID[id]; ok {
				resolved = append(resolved, a)
			}
		}
		out = append(out, models.PopulatedJobPost{JobPost: *job, Applicants: resolved})
	}
	return out, nil
}

// ListForJob returns the resolved applicants of a job post
func (s *ApplicantService) ListForJob(ctx context.Context, rawJobID string) ([]*models.Applicant, error) {
	job, err := s.job(ctx, rawJobID)
	if err != nil {
		return nil, err
	}

	applicants, err := s.applicants.GetByIDs(ctx, job.Applicants)
	if err != nil {
		return nil, fmt.Errorf("failed to get applicants: %w", err)
	}
	return applicants, nil
}

// Get returns one applicant
func (s *ApplicantService) Get(ctx context.Context, rawApplicantID string) (*models.Applicant, error) {
	id, err := validation.ObjectID(rawApplicantID, "applicantId")
	if err != nil {
		return nil, err
	}
	applicant, err := s.applicants.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Applicant not found")
	}
	return applicant, nil
}

// Count returns the number of applicant ids recorded on a job post
func (s *ApplicantService) Count(ctx context.Context, rawJobID string) (int, error) {
	job, err := s.job(ctx, rawJobID)
	if err != nil {
		return 0, err
	}
	return len(job.Applicants), nil
}

// Delete unlinks an applicant from its job post and deletes it
func (s *ApplicantService) Delete(ctx context.Context, rawJobID, rawApplicantID string) error {
	jobID, jobErr := primitive.ObjectIDFromHex(rawJobID)
	applicantID, applicantErr := primitive.ObjectIDFromHex(rawApplicantID)
	if jobErr != nil || applicantErr != nil {
		return apperror.BadRequest("Invalid jobId or applicantId")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return notFound(err, "Job post not found")
	}
	applicant, err := s.applicants.GetByID(ctx, applicantID)
	if err != nil {
		return notFound(err, "Applicant not found")
	}
	if applicant.JobPost != job.ID || !job.HasApplicant(applicant.ID) {
		return apperror.NotFound("Applicant not found for this job post")
	}

	err = pairedWrite(ctx, relationJobApplicants,
		func(ctx context.Context) error { return s.jobs.RemoveApplicant(ctx, job.ID, applicant.ID) },
		func(ctx context.Context) error { return s.applicants.Delete(ctx, applicant.ID) },
		func(ctx context.Context) error { return s.jobs.AddApplicant(ctx, job.ID, applicant.ID) },
	)
	if err != nil {
		return fmt.Errorf("failed to delete applicant: %w", err)
	}

	log.Info().Str("job_id", job.ID.Hex()).Str("applicant_id", applicant.ID.Hex()).Msg("Applicant deleted")

	s.notifier.Notify(job.UserID.Hex(), Event{
		Type:      EventApplicantDeleted,
		JobPostID: job.ID.Hex(),
		Applicant: applicant,
	})
	return nil
}
