package mongostore

import (
	"context"
	"fmt"

	"job-board-backend/internal/models"
	"job-board-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicantRepository handles MongoDB operations for applicants
type ApplicantRepository struct {
	collection *mongo.Collection
}

// NewApplicantRepository creates a new applicant repository
func NewApplicantRepository(db *mongo.Database) *ApplicantRepository {
	return &ApplicantRepository{collection: db.Collection(applicantsCollection)}
}

// Create creates a new applicant
func (r *ApplicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	if _, err := r.collection.InsertOne(ctx, applicant); err != nil {
		return fmt.Errorf("failed to create applicant: %w", translate(err))
	}
	return nil
}

// GetByID retrieves an applicant by ID
func (r *ApplicantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := r.collection.FindOne(ctx, byID(id)).Decode(&applicant); err != nil {
		return nil, fmt.Errorf("failed to get applicant: %w", translate(err))
	}
	return &applicant, nil
}

// GetByIDs retrieves the existing applicants among ids, in the order of ids
func (r *ApplicantRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Applicant, error) {
	if len(ids) == 0 {
		return []*models.Applicant{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find applicants: %w", err)
	}
	defer cursor.Close(ctx)

	index := make(map[primitive.ObjectID]*models.Applicant, len(ids))
	for cursor.Next(ctx) {
		var applicant models.Applicant
		if err := cursor.Decode(&applicant); err != nil {
			return nil, fmt.Errorf("failed to decode applicant: %w", err)
		}
		index[applicant.ID] = &applicant
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applicants: %w", err)
	}

	applicants := make([]*models.Applicant, 0, len(index))
	for _, id := range ids {
		if applicant, ok := index[id]; ok {
			applicants = append(applicants, applicant)
		}
	}
	return applicants, nil
}

// Delete deletes an applicant by ID
func (r *ApplicantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete applicant: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("applicant not found: %w", repository.ErrNotFound)
	}
	return nil
}

// DeleteByJobPost deletes every applicant of a job post
func (r *ApplicantRepository) DeleteByJobPost(ctx context.Context, jobID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"jobPost": jobID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete applicants of job post: %w", err)
	}
	return result.DeletedCount, nil
}
