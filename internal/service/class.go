package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devart/devart-server/internal/model"
	"github.com/devart/devart-server/internal/repository"
)

// ClassService handles the course-offering lifecycle.
type ClassService struct {
	classes ClassStore
}

// NewClassService constructs a ClassService.
func NewClassService(classes ClassStore) *ClassService {
	return &ClassService{classes: classes}
}

// Create validates the request and inserts a pending class owned by the
// instructor.
func (s *ClassService) Create(ctx context.Context, instructorMail string, req model.CreateClassRequest) (*model.Class, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: class name is required", ErrInvalidInput)
	}
	if req.AvailableSeats <= 0 {
		return nil, fmt.Errorf("%w: available_seats must be a positive integer", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	return s.classes.Create(ctx, normalizeEmail(instructorMail), req)
}

// Approved returns every class visible to students.
func (s *ClassService) Approved(ctx context.Context) ([]model.Class, error) {
	return s.classes.ListApproved(ctx)
}

// All returns every class regardless of status, for the admin view.
func (s *ClassService) All(ctx context.Context) ([]model.Class, error) {
	return s.classes.ListAll(ctx)
}

// Mine returns the classes owned by one instructor.
func (s *ClassService) Mine(ctx context.Context, instructorMail string) ([]model.Class, error) {
	return s.classes.ListByInstructor(ctx, normalizeEmail(instructorMail))
}

// Popular returns at most six classes, most enrolled first.
func (s *ClassService) Popular(ctx context.Context) ([]model.Class, error) {
	return s.classes.Popular(ctx, popularLimit)
}

// Approve moves a class to the approved state.
func (s *ClassService) Approve(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.ClassApproved)
}

// Deny moves a class to the denied state.
func (s *ClassService) Deny(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.ClassDenied)
}

func (s *ClassService) setStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return fmt.Errorf("%w: class id is required", ErrInvalidInput)
	}
	if err := s.classes.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("set class status: %w", err)
	}
	return nil
}

// Feedback records the admin's feedback text on a class.
func (s *ClassService) Feedback(ctx context.Context, id string, req model.FeedbackRequest) error {
	if id == "" {
		return fmt.Errorf("%w: class id is required", ErrInvalidInput)
	}
	if err := s.classes.SetFeedback(ctx, id, req.Feedback); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("set class feedback: %w", err)
	}
	return nil
}
