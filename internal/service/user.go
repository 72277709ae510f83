package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devart/devart-server/internal/model"
	"github.com/devart/devart-server/internal/repository"
)

// UserService handles registration and role administration.
type UserService struct {
	users UserStore
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Register creates a user record for the email if absent. Registering the
// same email twice surfaces repository.ErrDuplicateUser and leaves the
// existing record untouched.
func (s *UserService) Register(ctx context.Context, email string, req model.RegisterUserRequest) (*model.User, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return nil, fmt.Errorf("%w: email is not a valid email address", ErrInvalidInput)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	user, err := s.users.Create(ctx, email, req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// Promote sets a user's role to admin or instructor.
func (s *UserService) Promote(ctx context.Context, id string, role model.Role) error {
	if id == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if role != model.RoleAdmin && role != model.RoleInstructor {
		return fmt.Errorf("%w: cannot promote to role %q", ErrInvalidInput, role)
	}
	if err := s.users.Promote(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("promote user: %w", err)
	}
	return nil
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Instructors returns every user holding the instructor role.
func (s *UserService) Instructors(ctx context.Context) ([]model.User, error) {
	return s.users.ListInstructors(ctx)
}

// PopularInstructors returns at most six instructors, most enrolled first.
func (s *UserService) PopularInstructors(ctx context.Context) ([]model.User, error) {
	return s.users.PopularInstructors(ctx, popularLimit)
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
