package mongostore

import (
	"context"
	"fmt"

	"job-board-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles MongoDB operations for users
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection)}
}

func normalizeUser(user *models.User) *models.User {
	user.Jobs = nonNil(user.Jobs)
	user.Friends = nonNil(user.Friends)
	return user
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	normalizeUser(user)
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", translate(err))
	}
	return normalizeUser(&user), nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, byID(id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]*models.User, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*models.User, 0)
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, normalizeUser(&user))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// GetByIDs retrieves the existing users among ids, in the order of ids
func (r *UserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	found, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	index := make(map[primitive.ObjectID]*models.User, len(found))
	for _, user := range found {
		index[user.ID] = user
	}
	users := make([]*models.User, 0, len(found))
	for _, id := range ids {
		if user, ok := index[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.find(ctx, bson.M{})
}

// UpdateProfile updates the editable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	err := updateByID(ctx, r.collection, user.ID, bson.M{"$set": bson.M{
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"passwordHash": user.PasswordHash,
		"photo":        user.Photo,
		"updatedAt":    user.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// AddJob appends a job post to the user's job list
func (r *UserRepository) AddJob(ctx context.Context, userID, jobID primitive.ObjectID) error {
	if err := updateByID(ctx, r.collection, userID, bson.M{"$push": bson.M{"jobs": jobID}}); err != nil {
		return fmt.Errorf("failed to add job to user: %w", err)
	}
	return nil
}

// RemoveJob removes a job post from the user's job list
func (r *UserRepository) RemoveJob(ctx context.Context, userID, jobID primitive.ObjectID) error {
	if err := updateByID(ctx, r.collection, userID, bson.M{"$pull": bson.M{"jobs": jobID}}); err != nil {
		return fmt.Errorf("failed to remove job from user: %w", err)
	}
	return nil
}

// AddFriend adds friendID to the user's friend list once
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	if err := updateByID(ctx, r.collection, userID, bson.M{"$addToSet": bson.M{"friends": friendID}}); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

// RemoveFriend removes friendID from the user's friend list
func (r *UserRepository) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	if err := updateByID(ctx, r.collection, userID, bson.M{"$pull": bson.M{"friends": friendID}}); err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}
