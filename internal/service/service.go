// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/devart/devart-server/internal/model"
)

// ErrInvalidInput marks a rejected request payload. Handlers report it as a
// 400; every other non-sentinel failure is an internal error.
var ErrInvalidInput = errors.New("invalid input")

// UserStore is the persistence surface the services need for users.
// *repository.UserRepository satisfies it; tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, email string, req model.RegisterUserRequest) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListInstructors(ctx context.Context) ([]model.User, error)
	PopularInstructors(ctx context.Context, limit int) ([]model.User, error)
	Promote(ctx context.Context, id string, role model.Role) error
}

// ClassStore is the persistence surface for course offerings.
type ClassStore interface {
	Create(ctx context.Context, instructorMail string, req model.CreateClassRequest) (*model.Class, error)
	ListApproved(ctx context.Context) ([]model.Class, error)
	ListAll(ctx context.Context) ([]model.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]model.Class, error)
	Popular(ctx context.Context, limit int) ([]model.Class, error)
	SetStatus(ctx context.Context, id, status string) error
	SetFeedback(ctx context.Context, id, feedback string) error
}

// CartStore is the persistence surface for cart items.
type CartStore interface {
	Add(ctx context.Context, userEmail string, req model.AddCartItemRequest) (*model.CartItem, error)
	ListByStatus(ctx context.Context, userEmail, status string) ([]model.CartItem, error)
	GetByID(ctx context.Context, id string) (*model.CartItem, error)
	Delete(ctx context.Context, id string) error
}

// PaymentStore is the persistence surface for payments and checkout.
type PaymentStore interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error)
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
}

// popularLimit caps the popular-classes and popular-instructors listings.
const popularLimit = 6

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
