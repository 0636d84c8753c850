package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jungle-shop/storefront/internal/store"
	"github.com/jungle-shop/storefront/internal/validation"
	"github.com/jungle-shop/storefront/types"
)

// UserRegisteredChannel is the channel account sign-ups are published on.
const UserRegisteredChannel = "user.registered"

// ErrInvalidCredentials is returned by Authenticate for an unknown email and
// for a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hashed, plaintext string) bool
	VerifyDummy(plaintext string)
}

// EventPublisher publishes domain events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// UserRegisteredEvent is the payload published after a successful sign-up.
type UserRegisteredEvent struct {
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
	events EventPublisher
}

// NewUserService wires the service. events may be nil to disable publishing.
func NewUserService(repo UserRepository, hasher PasswordHasher, events EventPublisher) *UserService {
	return &UserService{repo: repo, hasher: hasher, events: events}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register validates the sign-up form, hashes the password and persists the
// account. Rule violations come back as validation.Errors.
func (s *UserService) Register(ctx context.Context, in types.NewUser) (types.User, error) {
	errs, err := validation.ValidateNewUser(ctx, s.repo, in)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check email uniqueness", "error", err)
		return types.User{}, err
	}
	if !errs.Valid() {
		return types.User{}, errs
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashed,
	})
	if err != nil {
		// Lost the race against a concurrent sign-up for the same email.
		if errors.Is(err, store.ErrConflict) {
			errs.Add("email", validation.AlreadyTaken)
			return types.User{}, errs
		}
		slog.ErrorContext(ctx, "failed to create user", "error", err)
		return types.User{}, err
	}

	s.publishRegistered(ctx, user)
	return user, nil
}

// Authenticate looks the user up by normalized email and verifies the
// password. Any mismatch yields ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	normalized := validation.NormalizeEmail(email)
	if normalized == "" {
		s.hasher.VerifyDummy(password)
		return types.User{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.VerifyDummy(password)
			return types.User{}, ErrInvalidCredentials
		}
		slog.ErrorContext(ctx, "failed to load user by email", "error", err)
		return types.User{}, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) publishRegistered(ctx context.Context, user types.User) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(UserRegisteredEvent{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode user registration", "user_id", user.ID, "error", err)
		return
	}

	attrs := map[string]string{"user_id": strconv.Itoa(user.ID)}
	if _, err := s.events.Publish(ctx, UserRegisteredChannel, payload, attrs); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registration", "user_id", user.ID, "error", err)
	}
}
