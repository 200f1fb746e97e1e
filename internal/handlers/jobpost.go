package handlers

import (
	"errors"
	"net/http"

	"job-board-backend/internal/apperror"
	"job-board-backend/internal/middleware"
	"job-board-backend/internal/models"
	"job-board-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var salaryFields = []string{"minimumSalary", "maximumSalary"}

// JobPostHandler handles job post HTTP requests
type JobPostHandler struct {
	jobService *services.JobPostService
	maxBytes   int64
}

// NewJobPostHandler creates a new job post handler
func NewJobPostHandler(jobService *services.JobPostService, maxBytes int64) *JobPostHandler {
	return &JobPostHandler{
		jobService: jobService,
		maxBytes:   maxBytes,
	}
}

// JobPostResponse wraps a single job post
type JobPostResponse struct {
	Success bool            `json:"success"`
	JobPost *models.JobPost `json:"jobPost"`
}

// UpdateJobPostResponse is returned after an update
type UpdateJobPostResponse struct {
	Success bool            `json:"success"`
	Job     *models.JobPost `json:"job"`
	Message string          `json:"message"`
}

// MessageResponse is a success flag with a message
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Create handles POST /api/v1/job/jobs
func (h *JobPostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	p, err := readPayload(w, r, h.maxBytes, "image", salaryFields...)
	if err != nil {
		respondFailure(w, r, asCreateConflict(err, userID))
		return
	}
	defer p.Close()

	var in services.JobPostInput
	if err := bind(p.fields, &in); err != nil {
		respondFailure(w, r, err)
		return
	}

	jobs, err := h.jobService.Create(r.Context(), userID, in, p.file)
	if err != nil {
		respondFailure(w, r, asCreateConflict(err, userID))
		return
	}

	respondJSON(w, http.StatusCreated, jobs)
}

// asCreateConflict reports every job creation failure other than
// authentication, missing owner and an oversized body as a conflict.
func asCreateConflict(err error, userID string) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		if reqErr.status == http.StatusRequestEntityTooLarge {
			return err
		}
		return apperror.Conflict(reqErr.message)
	}
	switch apperror.KindOf(err) {
	case apperror.KindUnauthorized, apperror.KindNotFound, apperror.KindConflict:
		return err
	case apperror.KindInternal:
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create job post")
		return apperror.Conflict("Failed to create job post")
	default:
		return apperror.Conflict(apperror.MessageOf(err))
	}
}

// List handles GET /api/v1/job/jobs
func (h *JobPostHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.List(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, jobs)
}

// Get handles GET /api/v1/job/jobs/{jobId}
func (h *JobPostHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobService.Get(r.Context(), chi.URLParam(r, "jobId"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, JobPostResponse{Success: true, JobPost: job})
}

// ListMine handles GET /api/v1/job/getMyJobPosts
func (h *JobPostHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, jobs)
}

// Update handles PUT /api/v1/job/update/{id}
func (h *JobPostHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r, h.maxBytes, "image", salaryFields...)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	defer p.Close()

	job, err := h.jobService.Update(r.Context(), chi.URLParam(r, "id"), p.fields, p.file)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, UpdateJobPostResponse{
		Success: true,
		Job:     job,
		Message: "Job Updated Successfully",
	})
}

// Delete handles DELETE /api/v1/job/delete/{id}
func (h *JobPostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.jobService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Job Deleted Successfully"})
}
