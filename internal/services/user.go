package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-board-backend/internal/apperror"
	"job-board-backend/internal/models"
	"job-board-backend/internal/repository"
	"job-board-backend/internal/validation"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var passwordCost = bcrypt.DefaultCost

var userPatchSchema = validation.PatchSchema(map[string]interface{}{
	"firstName": map[string]interface{}{"type": "string", "minLength": 2, "maxLength": 50},
	"lastName":  map[string]interface{}{"type": "string", "minLength": 2, "maxLength": 50},
	"email":     map[string]interface{}{"type": "string", "format": "email", "maxLength": 50},
	"password":  map[string]interface{}{"type": "string", "minLength": 5},
})

// RegisterInput is the profile submitted on registration
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email,max=50"`
	Password  string `json:"password" validate:"required,min=5"`
}

type userPatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// Session is the outcome of a successful login
type Session struct {
	Token  string
	Claims *TokenClaims
	User   *models.User
}

// UserService handles user-related business logic
type UserService struct {
	users    repository.UserRepository
	uploader FileUploader
	tokens   *TokenService
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepository, uploader FileUploader, tokens *TokenService) *UserService {
	return &UserService{
		users:    users,
		uploader: uploader,
		tokens:   tokens,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a new user with an optional profile photo
func (s *UserService) Register(ctx context.Context, in RegisterInput, photo *Upload) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict("Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Jobs:         []primitive.ObjectID{},
		Friends:      []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if photo != nil {
		if user.Photo, err = s.uploader.Upload(ctx, FolderPhotos, photo); err != nil {
			return nil, err
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID.Hex()).Msg("User registered")
	return user, nil
}

// Login checks credentials and issues a session token
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	token, claims, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, Claims: claims, User: user}, nil
}

// List returns every user
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns one user
func (s *UserService) Get(ctx context.Context, rawID string) (*models.User, error) {
	id, err := validation.ObjectID(rawID, "userId")
	if err != nil {
		return nil, err
	}
	return s.get(ctx, id, "User not found")
}

func (s *UserService) get(ctx context.Context, id primitive.ObjectID, missing string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, missing)
	}
	return user, nil
}

// Friends returns the resolved friend list of a user
func (s *UserService) Friends(ctx context.Context, rawID string) ([]*models.User, error) {
	user, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return s.resolveFriends(ctx, user)
}

func (s *UserService) resolveFriends(ctx context.Context, user *models.User) ([]*models.User, error) {
	friends, err := s.users.GetByIDs(ctx, user.Friends)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	return friends, nil
}

// ToggleFriend adds or removes the friendship between two users on both
// sides, and returns the first user's resolved friend list.
func (s *UserService) ToggleFriend(ctx context.Context, rawID, rawFriendID string) ([]*models.User, error) {
	id, err := validation.ObjectID(rawID, "userId")
	if err != nil {
		return nil, err
	}
	friendID, err := validation.ObjectID(rawFriendID, "friendId")
	if err != nil {
		return nil, err
	}
	if id == friendID {
		return nil, apperror.Conflict("Cannot add yourself as a friend")
	}

	user, err := s.get(ctx, id, "User not found")
	if err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, friendID, "Friend not found"); err != nil {
		return nil, err
	}

	if user.HasFriend(friendID) {
		err = pairedWrite(ctx, relationUserFriends,
			func(ctx context.Context) error { return s.users.RemoveFriend(ctx, id, friendID) },
			func(ctx context.Context) error { return s.users.RemoveFriend(ctx, friendID, id) },
			func(ctx context.Context) error { return s.users.AddFriend(ctx, id, friendID) },
		)
	} else {
		err = pairedWrite(ctx, relationUserFriends,
			func(ctx context.Context) error { return s.users.AddFriend(ctx, id, friendID) },
			func(ctx context.Context) error { return s.users.AddFriend(ctx, friendID, id) },
			func(ctx context.Context) error { return s.users.RemoveFriend(ctx, id, friendID) },
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update friends: %w", err)
	}

	user, err = s.get(ctx, id, "User not found")
	if err != nil {
		return nil, err
	}
	return s.resolveFriends(ctx, user)
}

// Edit applies a partial profile update and an optional new photo
func (s *UserService) Edit(ctx context.Context, rawID string, patch map[string]interface{}, photo *Upload) (*models.User, error) {
	user, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if err := validation.Patch(patch, userPatchSchema); err != nil {
		return nil, err
	}
	var p userPatch
	if err := decodePatch(patch, &p); err != nil {
		return nil, err
	}

	if p.FirstName != nil {
		user.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		user.LastName = *p.LastName
	}
	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		if email != user.Email {
			existing, err := s.users.GetByEmail(ctx, email)
			switch {
			case err == nil && existing.ID != user.ID:
				return nil, apperror.Conflict("Email already registered")
			case err != nil && !errors.Is(err, repository.ErrNotFound):
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
		}
		user.Email = email
	}
	if p.Password != nil {
		if user.PasswordHash, err = hashPassword(*p.Password); err != nil {
			return nil, err
		}
	}

	if photo != nil {
		if user.Photo, err = s.uploader.Upload(ctx, FolderPhotos, photo); err != nil {
			return nil, err
		}
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, apperror.Conflict("Email already registered")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// decodePatch copies a validated update document into a struct of pointers
func decodePatch(doc map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return apperror.Internal("failed to read update", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperror.Conflict("invalid update: " + err.Error())
	}
	return nil
}
