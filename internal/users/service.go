package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smarthire-backend/internal/shared/auth"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service contains account and credential logic.
type Service struct {
	Repo   Repo
	Tokens *auth.TokenManager
}

func NewService(repo Repo, tokens *auth.TokenManager) *Service {
	return &Service{Repo: repo, Tokens: tokens}
}

// Register creates a new account with a hashed password and returns the user
// plus a signed token.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return User{}, "", fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return User{}, "", fmt.Errorf("%w: please provide a valid email address", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return User{}, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, "", ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleStudent,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := s.Tokens.Sign(user.ID, user.Role)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user plus a signed token.
// Unknown email and password mismatch are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, "", fmt.Errorf("%w: please provide email and password", ErrInvalidInput)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Sign(user.ID, user.Role)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID returns a user by ID.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// List returns all accounts. Admin only at the handler layer.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

// UpdateInput carries the admin-editable fields of an account.
type UpdateInput struct {
	Name  string
	Email string
	Role  string
}

// Update edits an account's profile fields. Empty input fields keep the
// current value. Admin only at the handler layer.
func (s *Service) Update(ctx context.Context, userID string, input UpdateInput) (User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" {
		if !emailPattern.MatchString(email) {
			return User{}, fmt.Errorf("%w: please provide a valid email address", ErrInvalidInput)
		}
		user.Email = email
	}
	if role := strings.TrimSpace(input.Role); role != "" {
		if !ValidRole(role) {
			return User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
		}
		user.Role = role
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}
