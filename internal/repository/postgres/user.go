package postgres

import (
	"context"
	"fmt"

	"job-board-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userColumns = `id, first_name, last_name, email, password_hash, photo_url, photo_filename,
	jobs, friends, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		user                models.User
		id                  string
		photoURL, photoName *string
		jobs, friends       []string
	)
	err := row.Scan(
		&id, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash,
		&photoURL, &photoName, &jobs, &friends, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if user.ID, err = parseID(id); err != nil {
		return nil, err
	}
	if user.Jobs, err = parseIDs(jobs); err != nil {
		return nil, err
	}
	if user.Friends, err = parseIDs(friends); err != nil {
		return nil, err
	}
	user.Photo = fileFromColumns(photoURL, photoName)
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	photoURL, photoName := fileColumns(user.Photo)
	_, err := r.db.Exec(ctx, query,
		user.ID.Hex(), user.FirstName, user.LastName, user.Email, user.PasswordHash,
		photoURL, photoName, hexIDs(user.Jobs), hexIDs(user.Friends), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id.Hex()))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", translate(err))
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", translate(err))
	}
	return user, nil
}

func (r *UserRepository) query(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// GetByIDs retrieves the existing users among ids, in the order of ids
func (r *UserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = ANY($1)
		ORDER BY array_position($1, id)
	`
	return r.query(ctx, query, hexIDs(ids))
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
}

// UpdateProfile updates the editable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, password_hash = $4,
			photo_url = $5, photo_filename = $6, updated_at = $7
		WHERE id = $8
	`
	photoURL, photoName := fileColumns(user.Photo)
	tag, err := r.db.Exec(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		photoURL, photoName, user.UpdatedAt, user.ID.Hex(),
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", translate(err))
	}
	if err := requireRow(tag); err != nil {
		return fmt.Errorf("user not found: %w", err)
	}
	return nil
}

func (r *UserRepository) updateList(ctx context.Context, query string, userID, refID primitive.ObjectID) error {
	tag, err := r.db.Exec(ctx, query, refID.Hex(), userID.Hex())
	if err != nil {
		return err
	}
	return requireRow(tag)
}

// AddJob appends a job post to the user's job list
func (r *UserRepository) AddJob(ctx context.Context, userID, jobID primitive.ObjectID) error {
	query := `UPDATE users SET jobs = array_append(jobs, $1) WHERE id = $2`
	if err := r.updateList(ctx, query, userID, jobID); err != nil {
		return fmt.Errorf("failed to add job to user: %w", err)
	}
	return nil
}

// RemoveJob removes a job post from the user's job list
func (r *UserRepository) RemoveJob(ctx context.Context, userID, jobID primitive.ObjectID) error {
	query := `UPDATE users SET jobs = array_remove(jobs, $1) WHERE id = $2`
	if err := r.updateList(ctx, query, userID, jobID); err != nil {
		return fmt.Errorf("failed to remove job from user: %w", err)
	}
	return nil
}

// AddFriend adds friendID to the user's friend list once
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	query := `
		UPDATE users
		SET friends = CASE WHEN $1::text = ANY(friends) THEN friends ELSE array_append(friends, $1::text) END
		WHERE id = $2
	`
	if err := r.updateList(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

// RemoveFriend removes friendID from the user's friend list
func (r *UserRepository) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	query := `UPDATE users SET friends = array_remove(friends, $1) WHERE id = $2`
	if err := r.updateList(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}
