package mongostore

import (
	"context"
	"fmt"

	"job-board-backend/internal/models"
	"job-board-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JobPostRepository handles MongoDB operations for job posts
type JobPostRepository struct {
	collection *mongo.Collection
}

// NewJobPostRepository creates a new job post repository
func NewJobPostRepository(db *mongo.Database) *JobPostRepository {
	return &JobPostRepository{collection: db.Collection(jobPostsCollection)}
}

// Create creates a new job post
func (r *JobPostRepository) Create(ctx context.Context, job *models.JobPost) error {
	job.Applicants = nonNil(job.Applicants)
	if _, err := r.collection.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to create job post: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a job post by ID
func (r *JobPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.JobPost, error) {
	var job models.JobPost
	if err := r.collection.FindOne(ctx, byID(id)).Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to get job post: %w", translate(err))
	}
	job.Applicants = nonNil(job.Applicants)
	return &job, nil
}

func (r *JobPostRepository) find(ctx context.Context, filter bson.M) ([]*models.JobPost, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find job posts: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := make([]*models.JobPost, 0)
	for cursor.Next(ctx) {
		var job models.JobPost
		if err := cursor.Decode(&job); err != nil {
			return nil, fmt.Errorf("failed to decode job post: %w", err)
		}
		job.Applicants = nonNil(job.Applicants)
		jobs = append(jobs, &job)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job posts: %w", err)
	}
	return jobs, nil
}

// List retrieves all job posts
func (r *JobPostRepository) List(ctx context.Context) ([]*models.JobPost, error) {
	return r.find(ctx, bson.M{})
}

// ListByUser retrieves the job posts owned by a user
func (r *JobPostRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.JobPost, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// Update updates the editable fields of a job post
func (r *JobPostRepository) Update(ctx context.Context, job *models.JobPost) error {
	err := updateByID(ctx, r.collection, job.ID, bson.M{"$set": bson.M{
		"jobTitle":        job.JobTitle,
		"companyName":     job.CompanyName,
		"minimumSalary":   job.MinimumSalary,
		"maximumSalary":   job.MaximumSalary,
		"salaryType":      job.SalaryType,
		"jobLocation":     job.JobLocation,
		"companyAddress":  job.CompanyAddress,
		"experienceLevel": job.ExperienceLevel,
		"employmentType":  job.EmploymentType,
		"jobDescription":  job.JobDescription,
		"companyLogo":     job.CompanyLogo,
		"postedBy":        job.PostedBy,
	}})
	if err != nil {
		return fmt.Errorf("failed to update job post: %w", err)
	}
	return nil
}

// Delete deletes a job post by ID
func (r *JobPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete job post: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("job post not found: %w", repository.ErrNotFound)
	}
	return nil
}

// AddApplicant appends an applicant to the job post's applicant list
func (r *JobPostRepository) AddApplicant(ctx context.Context, jobID, applicantID primitive.ObjectID) error {
	if err := updateByID(ctx, r.collection, jobID, bson.M{"$push": bson.M{"applicants": applicantID}}); err != nil {
		return fmt.Errorf("failed to add applicant to job post: %w", err)
	}
	return nil
}

// RemoveApplicant removes an applicant from the job post's applicant list
func (r *JobPostRepository) RemoveApplicant(ctx context.Context, jobID, applicantID primitive.ObjectID) error {
	if err := updateByID(ctx, r.collection, jobID, bson.M{"$pull": bson.M{"applicants": applicantID}}); err != nil {
		return fmt.Errorf("failed to remove applicant from job post: %w", err)
	}
	return nil
}
