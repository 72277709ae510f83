package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devart/devart-server/internal/model"
	"github.com/devart/devart-server/internal/repository"
	"github.com/devart/devart-server/internal/token"
)

// AuthService issues identity tokens and answers per-request role lookups.
type AuthService struct {
	codec *token.Codec
	users UserStore
}

// NewAuthService constructs an AuthService.
func NewAuthService(codec *token.Codec, users UserStore) *AuthService {
	return &AuthService{codec: codec, users: users}
}

// IssueToken signs a token for the given identity payload.
// Credential verification is the caller's concern; issuance itself is
// unconditional for any well-formed email.
func (s *AuthService) IssueToken(req model.TokenRequest) (string, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return s.codec.Sign(email)
}

// VerifyToken validates a bearer token and returns the asserted email.
func (s *AuthService) VerifyToken(raw string) (string, error) {
	return s.codec.Verify(raw)
}

// RoleOf returns the stored role for an email. An unknown email has no
// role rather than being an error, mirroring how clients ask for it.
func (s *AuthService) RoleOf(ctx context.Context, email string) (model.Role, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("look up role: %w", err)
	}
	return user.Role, nil
}
