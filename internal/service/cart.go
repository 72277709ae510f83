package service

import (
	"context"
	"fmt"

	"github.com/devart/devart-server/internal/model"
)

// CartService manages a user's pending purchases.
type CartService struct {
	cart CartStore
}

// NewCartService constructs a CartService.
func NewCartService(cart CartStore) *CartService {
	return &CartService{cart: cart}
}

// Add puts a class in the user's cart in the selected state.
func (s *CartService) Add(ctx context.Context, userEmail string, req model.AddCartItemRequest) (*model.CartItem, error) {
	userEmail = normalizeEmail(userEmail)
	if !isValidEmail(userEmail) {
		return nil, fmt.Errorf("%w: email is not a valid email address", ErrInvalidInput)
	}
	if req.ClassID == "" {
		return nil, fmt.Errorf("%w: class_id is required", ErrInvalidInput)
	}
	return s.cart.Add(ctx, userEmail, req)
}

// Selected returns a user's not-yet-paid cart items.
func (s *CartService) Selected(ctx context.Context, userEmail string) ([]model.CartItem, error) {
	return s.cart.ListByStatus(ctx, normalizeEmail(userEmail), model.CartSelected)
}

// Enrolled returns the cart items a user has paid for.
func (s *CartService) Enrolled(ctx context.Context, userEmail string) ([]model.CartItem, error) {
	return s.cart.ListByStatus(ctx, normalizeEmail(userEmail), model.CartPaid)
}

// Get returns a single cart item by id.
func (s *CartService) Get(ctx context.Context, id string) (*model.CartItem, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: cart item id is required", ErrInvalidInput)
	}
	return s.cart.GetByID(ctx, id)
}

// Remove deletes a still-selected cart item.
func (s *CartService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: cart item id is required", ErrInvalidInput)
	}
	return s.cart.Delete(ctx, id)
}
