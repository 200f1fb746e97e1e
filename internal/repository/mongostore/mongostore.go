// Package mongostore implements the repositories on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection      = "users"
	jobPostsCollection   = "jobposts"
	applicantsCollection = "applicants"
)

// Connect opens a client and verifies the connection
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// New creates the repositories on db
func New(client *mongo.Client, db *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:      NewUserRepository(db),
		JobPosts:   NewJobPostRepository(db),
		Applicants: NewApplicantRepository(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		Close: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}
}

// EnsureIndexes creates the unique email index and the reference lookup indexes
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{
			collection: usersCollection,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("email_unique"),
			},
		},
		{
			collection: jobPostsCollection,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "userId", Value: 1}},
				Options: options.Index().SetName("user_id"),
			},
		},
		{
			collection: applicantsCollection,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "jobPost", Value: 1}},
				Options: options.Index().SetName("job_post"),
			},
		},
	}

	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}

// translate maps driver errors onto repository sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicateKey
	default:
		return err
	}
}

func byID(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id}
}

func nonNil(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}

// updateByID applies update to one document and reports ErrNotFound when nothing matched
func updateByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, update bson.M) error {
	result, err := coll.UpdateOne(ctx, byID(id), update)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
