package handlers

import (
	"net/http"

	"job-board-backend/internal/models"
	"job-board-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// ApplicantHandler handles application HTTP requests
type ApplicantHandler struct {
	applicantService *services.ApplicantService
	maxBytes         int64
}

// NewApplicantHandler creates a new applicant handler
func NewApplicantHandler(applicantService *services.ApplicantService, maxBytes int64) *ApplicantHandler {
	return &ApplicantHandler{
		applicantService: applicantService,
		maxBytes:         maxBytes,
	}
}

type applyResponse struct {
	Success  bool                      `json:"success"`
	Message  string                    `json:"message"`
	JobPosts []models.PopulatedJobPost `json:"jobPosts"`
}

type applicantsResponse struct {
	Success    bool                `json:"success"`
	Applicants []*models.Applicant `json:"applicants"`
}

type applicantResponse struct {
	Success   bool              `json:"success"`
	Applicant *models.Applicant `json:"applicant"`
}

type countResponse struct {
	Success            bool `json:"success"`
	NumberOfApplicants int  `json:"numberOfApplicants"`
}

// Apply handles POST /api/v1/apply/jobs/{jobId}/apply
func (h *ApplicantHandler) Apply(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r, h.maxBytes, "resume")
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	defer p.Close()

	var in services.ApplicantInput
	if err := bind(p.fields, &in); err != nil {
		respondFailure(w, r, err)
		return
	}

	jobs, err := h.applicantService.Apply(r.Context(), chi.URLParam(r, "jobId"), in, p.file)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, applyResponse{
		Success:  true,
		Message:  "Application Submitted",
		JobPosts: jobs,
	})
}

// List handles GET /api/v1/apply/jobs/{jobId}/applicants
func (h *ApplicantHandler) List(w http.ResponseWriter, r *http.Request) {
	applicants, err := h.applicantService.ListForJob(r.Context(), chi.URLParam(r, "jobId"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, applicantsResponse{Success: true, Applicants: applicants})
}

// Get handles GET /api/v1/apply/jobs/{jobId}/applicants/{applicantId}
func (h *ApplicantHandler) Get(w http.ResponseWriter, r *http.Request) {
	applicant, err := h.applicantService.Get(r.Context(), chi.URLParam(r, "applicantId"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, applicantResponse{Success: true, Applicant: applicant})
}

// Count handles GET /api/v1/apply/jobs/{jobId}/noofapplicants
func (h *ApplicantHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.applicantService.Count(r.Context(), chi.URLParam(r, "jobId"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, countResponse{Success: true, NumberOfApplicants: n})
}

// Delete handles DELETE /api/v1/apply/jobs/{jobId}/applicants/{applicantId}
func (h *ApplicantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.applicantService.Delete(r.Context(), chi.URLParam(r, "jobId"), chi.URLParam(r, "applicantId"))
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Applicant deleted successfully"})
}
