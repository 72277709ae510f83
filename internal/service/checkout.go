package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/devart/devart-server/internal/gateway"
	"github.com/devart/devart-server/internal/model"
	"github.com/devart/devart-server/internal/repository"
)

// checkoutCurrency is the only currency the marketplace charges in.
const checkoutCurrency = "usd"

// CheckoutService obtains payment secrets from the gateway and finalizes
// completed payments.
type CheckoutService struct {
	payments PaymentStore
	gateway  gateway.Client
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(payments PaymentStore, gw gateway.Client) *CheckoutService {
	return &CheckoutService{payments: payments, gateway: gw}
}

// CreateIntent asks the gateway for a client secret covering price,
// converted to minor units.
func (s *CheckoutService) CreateIntent(ctx context.Context, req model.PaymentIntentRequest) (string, error) {
	if req.Price <= 0 {
		return "", fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	amount := int64(math.Round(req.Price * 100))
	secret, err := s.gateway.CreatePaymentIntent(ctx, amount, checkoutCurrency)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return secret, nil
}

// Finalize applies the checkout state transition for a completed payment.
func (s *CheckoutService) Finalize(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error) {
	req.Email = normalizeEmail(req.Email)
	req.InstructorMail = normalizeEmail(req.InstructorMail)
	if !isValidEmail(req.Email) || !isValidEmail(req.InstructorMail) {
		return nil, fmt.Errorf("%w: email is not a valid email address", ErrInvalidInput)
	}
	if req.CartID == "" || req.ClassID == "" {
		return nil, fmt.Errorf("%w: cartID and classID are required", ErrInvalidInput)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	result, err := s.payments.Checkout(ctx, req)
	if err != nil {
		// Surface domain errors directly so handlers can set correct HTTP status.
		if errors.Is(err, repository.ErrNotFound) ||
			errors.Is(err, repository.ErrSoldOut) ||
			errors.Is(err, repository.ErrAlreadyPaid) {
			return nil, err
		}
		return nil, fmt.Errorf("finalize payment: %w", err)
	}
	return result, nil
}

// History returns a user's payments, most recent first.
func (s *CheckoutService) History(ctx context.Context, email string) ([]model.Payment, error) {
	return s.payments.ListByEmail(ctx, normalizeEmail(email))
}
