// Package repository declares the data access contracts for users, job posts
// and applicants. Implementations live in the mongo, postgres and memory
// subpackages.
package repository

import (
	"context"
	"errors"

	"job-board-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a unique constraint is violated
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserRepository handles persistence of users
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs returns the users that exist among ids, in the order of ids.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// UpdateProfile writes name, email, password hash, photo and updatedAt.
	UpdateProfile(ctx context.Context, user *models.User) error
	AddJob(ctx context.Context, userID, jobID primitive.ObjectID) error
	RemoveJob(ctx context.Context, userID, jobID primitive.ObjectID) error
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
}

// JobPostRepository handles persistence of job posts
type JobPostRepository interface {
	Create(ctx context.Context, job *models.JobPost) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.JobPost, error)
	List(ctx context.Context) ([]*models.JobPost, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.JobPost, error)
	// Update writes every editable field. The owner and applicant list are left untouched.
	Update(ctx context.Context, job *models.JobPost) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddApplicant(ctx context.Context, jobID, applicantID primitive.ObjectID) error
	RemoveApplicant(ctx context.Context, jobID, applicantID primitive.ObjectID) error
}

// ApplicantRepository handles persistence of applicants
type ApplicantRepository interface {
	Create(ctx context.Context, applicant *models.Applicant) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Applicant, error)
	// GetByIDs returns the applicants that exist among ids, in the order of ids.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Applicant, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByJobPost(ctx context.Context, jobID primitive.ObjectID) (int64, error)
}

// Store bundles the three repositories of one backend
type Store struct {
	Users      UserRepository
	JobPosts   JobPostRepository
	Applicants ApplicantRepository
	// Ping checks backend connectivity.
	Ping func(ctx context.Context) error
	// Close releases backend resources.
	Close func(ctx context.Context) error
}
