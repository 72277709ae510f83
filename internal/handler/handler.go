// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/devart/devart-server/internal/model"
	"github.com/devart/devart-server/internal/repository"
	"github.com/devart/devart-server/internal/service"
)

// Handler holds all HTTP handlers for the devArt API.
type Handler struct {
	auth     *service.AuthService
	users    *service.UserService
	classes  *service.ClassService
	cart     *service.CartService
	checkout *service.CheckoutService
	validate *validator.Validate
	logger   *zap.Logger
}

// New constructs a Handler.
func New(
	logger *zap.Logger,
	auth *service.AuthService,
	users *service.UserService,
	classes *service.ClassService,
	cart *service.CartService,
	checkout *service.CheckoutService,
) *Handler {
	return &Handler{
		auth:     auth,
		users:    users,
		classes:  classes,
		cart:     cart,
		checkout: checkout,
		validate: validator.New(),
		logger:   logger,
	}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// decode parses and validates a JSON request body into dst.
func (h *Handler) decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}

// respondError maps domain errors to HTTP statuses. Anything unrecognised
// is an internal failure: logged and reported as a 500, never dropped.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrDuplicateUser):
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, repository.ErrSoldOut):
		writeError(w, http.StatusConflict, "no seats remaining")
	case errors.Is(err, repository.ErrAlreadyPaid):
		writeError(w, http.StatusConflict, "cart item already paid")
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
