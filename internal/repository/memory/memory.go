// Package memory is an in-process implementation of the repositories, used
// for local development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"job-board-backend/internal/models"
	"job-board-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type database struct {
	mu         sync.RWMutex
	users      map[primitive.ObjectID]*models.User
	jobs       map[primitive.ObjectID]*models.JobPost
	applicants map[primitive.ObjectID]*models.Applicant
}

// New creates an empty in-memory store
func New() *repository.Store {
	db := &database{
		users:      make(map[primitive.ObjectID]*models.User),
		jobs:       make(map[primitive.ObjectID]*models.JobPost),
		applicants: make(map[primitive.ObjectID]*models.Applicant),
	}
	return &repository.Store{
		Users:      &UserRepository{db: db},
		JobPosts:   &JobPostRepository{db: db},
		Applicants: &ApplicantRepository{db: db},
		Ping:       func(context.Context) error { return nil },
		Close:      func(context.Context) error { return nil },
	}
}

func copyIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

func copyFile(f *models.FileInfo) *models.FileInfo {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Photo = copyFile(u.Photo)
	c.Jobs = copyIDs(u.Jobs)
	c.Friends = copyIDs(u.Friends)
	return &c
}

func copyJob(j *models.JobPost) *models.JobPost {
	c := *j
	c.CompanyLogo = copyFile(j.CompanyLogo)
	c.Applicants = copyIDs(j.Applicants)
	return &c
}

func copyApplicant(a *models.Applicant) *models.Applicant {
	c := *a
	return &c
}

// sortedByID returns map values ordered by ObjectID, which follows creation order
func sortedByID[T any](m map[primitive.ObjectID]T) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })
	return ids
}

// UserRepository stores users in memory
type UserRepository struct {
	db *database
}

// Create creates a new user
func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("failed to create user: %w", repository.ErrDuplicateKey)
		}
	}
	r.db.users[user.ID] = copyUser(user)
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	user, ok := r.db.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", repository.ErrNotFound)
	}
	return copyUser(user), nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if strings.EqualFold(user.Email, email) {
			return copyUser(user), nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", repository.ErrNotFound)
}

// GetByIDs retrieves the existing users among ids
func (r *UserRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.db.users[id]; ok {
			users = append(users, copyUser(user))
		}
	}
	return users, nil
}

// List retrieves all users
func (r *UserRepository) List(_ context.Context) ([]*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]*models.User, 0, len(r.db.users))
	for _, id := range sortedByID(r.db.users) {
		users = append(users, copyUser(r.db.users[id]))
	}
	return users, nil
}

// UpdateProfile updates the editable profile fields of a user
func (r *UserRepository) UpdateProfile(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.users[user.ID]
	if !ok {
		return fmt.Errorf("user not found: %w", repository.ErrNotFound)
	}
	for id, other := range r.db.users {
		if id != user.ID && strings.EqualFold(other.Email, user.Email) {
			return fmt.Errorf("failed to update user: %w", repository.ErrDuplicateKey)
		}
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	existing.PasswordHash = user.PasswordHash
	existing.Photo = copyFile(user.Photo)
	existing.UpdatedAt = user.UpdatedAt
	return nil
}

func (r *UserRepository) mutate(id primitive.ObjectID, fn func(u *models.User)) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[id]
	if !ok {
		return fmt.Errorf("user not found: %w", repository.ErrNotFound)
	}
	fn(user)
	return nil
}

// AddJob appends a job post to the user's job list
func (r *UserRepository) AddJob(_ context.Context, userID, jobID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Jobs = append(u.Jobs, jobID) })
}

// RemoveJob removes a job post from the user's job list
func (r *UserRepository) RemoveJob(_ context.Context, userID, jobID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Jobs = models.RemoveID(u.Jobs, jobID) })
}

// AddFriend adds friendID to the user's friend list once
func (r *UserRepository) AddFriend(_ context.Context, userID, friendID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) {
		if !u.HasFriend(friendID) {
			u.Friends = append(u.Friends, friendID)
		}
	})
}

// RemoveFriend removes friendID from the user's friend list
func (r *UserRepository) RemoveFriend(_ context.Context, userID, friendID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Friends = models.RemoveID(u.Friends, friendID) })
}

// JobPostRepository stores job posts in memory
type JobPostRepository struct {
	db *database
}

// Create creates a new job post
func (r *JobPostRepository) Create(_ context.Context, job *models.JobPost) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.jobs[job.ID]; exists {
		return fmt.Errorf("failed to create job post: %w", repository.ErrDuplicateKey)
	}
	r.db.jobs[job.ID] = copyJob(job)
	return nil
}

// GetByID retrieves a job post by ID
func (r *JobPostRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.JobPost, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	job, ok := r.db.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job post not found: %w", repository.ErrNotFound)
	}
	return copyJob(job), nil
}

// List retrieves all job posts
func (r *JobPostRepository) List(_ context.Context) ([]*models.JobPost, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	jobs := make([]*models.JobPost, 0, len(r.db.jobs))
	for _, id := range sortedByID(r.db.jobs) {
		jobs = append(jobs, copyJob(r.db.jobs[id]))
	}
	return jobs, nil
}

// ListByUser retrieves the job posts owned by a user
func (r *JobPostRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*models.JobPost, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	jobs := make([]*models.JobPost, 0)
	for _, id := range sortedByID(r.db.jobs) {
		if job := r.db.jobs[id]; job.UserID == userID {
			jobs = append(jobs, copyJob(job))
		}
	}
	return jobs, nil
}

// Update updates the editable fields of a job post
func (r *JobPostRepository) Update(_ context.Context, job *models.JobPost) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.jobs[job.ID]
	if !ok {
		return fmt.Errorf("job post not found: %w", repository.ErrNotFound)
	}
	updated := copyJob(job)
	updated.UserID = existing.UserID
	updated.Applicants = existing.Applicants
	updated.JobPostingDate = existing.JobPostingDate
	r.db.jobs[job.ID] = updated
	return nil
}

// Delete deletes a job post by ID
func (r *JobPostRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.jobs[id]; !ok {
		return fmt.Errorf("job post not found: %w", repository.ErrNotFound)
	}
	delete(r.db.jobs, id)
	return nil
}

// AddApplicant appends an applicant to the job post's applicant list
func (r *JobPostRepository) AddApplicant(_ context.Context, jobID, applicantID primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	job, ok := r.db.jobs[jobID]
	if !ok {
		return fmt.Errorf("job post not found: %w", repository.ErrNotFound)
	}
	job.Applicants = append(job.Applicants, applicantID)
	return nil
}

// RemoveApplicant removes an applicant from the job post's applicant list
func (r *JobPostRepository) RemoveApplicant(_ context.Context, jobID, applicantID primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	job, ok := r.db.jobs[jobID]
	if !ok {
		return fmt.Errorf("job post not found: %w", repository.ErrNotFound)
	}
	job.Applicants = models.RemoveID(job.Applicants, applicantID)
	return nil
}

// ApplicantRepository stores applicants in memory
type ApplicantRepository struct {
	db *database
}

// Create creates a new applicant
func (r *ApplicantRepository) Create(_ context.Context, applicant *models.Applicant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.applicants[applicant.ID]; exists {
		return fmt.Errorf("failed to create applicant: %w", repository.ErrDuplicateKey)
	}
	r.db.applicants[applicant.ID] = copyApplicant(applicant)
	return nil
}

// GetByID retrieves an applicant by ID
func (r *ApplicantRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Applicant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	applicant, ok := r.db.applicants[id]
	if !ok {
		return nil, fmt.Errorf("applicant not found: %w", repository.ErrNotFound)
	}
	return copyApplicant(applicant), nil
}

// GetByIDs retrieves the existing applicants among ids
func (r *ApplicantRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*models.Applicant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	applicants := make([]*models.Applicant, 0, len(ids))
	for _, id := range ids {
		if applicant, ok := r.db.applicants[id]; ok {
			applicants = append(applicants, copyApplicant(applicant))
		}
	}
	return applicants, nil
}

// Delete deletes an applicant by ID
func (r *ApplicantRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.applicants[id]; !ok {
		return fmt.Errorf("applicant not found: %w", repository.ErrNotFound)
	}
	delete(r.db.applicants, id)
	return nil
}

// DeleteByJobPost deletes every applicant of a job post
func (r *ApplicantRepository) DeleteByJobPost(_ context.Context, jobID primitive.ObjectID) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var deleted int64
	for id, applicant := range r.db.applicants {
		if applicant.JobPost == jobID {
			delete(r.db.applicants, id)
			deleted++
		}
	}
	return deleted, nil
}
