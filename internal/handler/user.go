package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devart/devart-server/internal/model"
)

// IssueToken handles POST /jwt
// Signs a one-hour identity token for the submitted email.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req model.TokenRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	tok, err := h.auth.IssueToken(req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// RegisterUser handles POST /user/{email}
// Creates the user if absent; a repeat registration gets 409 and no write.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req model.RegisterUserRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.Register(r.Context(), email, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ListUsers handles GET /users (admin)
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// UserRole handles GET /userrole/{email}
// Reports the caller's stored role; an unknown email has an empty role.
func (h *Handler) UserRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !callerIs(r, email) {
		writeError(w, http.StatusForbidden, "forbidden access")
		return
	}

	role, err := h.auth.RoleOf(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.RoleResponse{Role: role})
}

// MakeAdmin handles PUT /makeadmin/{id} (admin)
func (h *Handler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	h.promote(w, r, model.RoleAdmin)
}

// MakeInstructor handles PUT /makeinstructor/{id} (admin)
func (h *Handler) MakeInstructor(w http.ResponseWriter, r *http.Request) {
	h.promote(w, r, model.RoleInstructor)
}

func (h *Handler) promote(w http.ResponseWriter, r *http.Request, role model.Role) {
	id := chi.URLParam(r, "id")

	if err := h.users.Promote(r.Context(), id, role); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "role": string(role)})
}

// Instructors handles GET /instructors
func (h *Handler) Instructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.users.Instructors(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if instructors == nil {
		instructors = []model.User{}
	}
	writeJSON(w, http.StatusOK, instructors)
}

// PopularInstructors handles GET /popularinstructors
// Returns at most six instructors ordered by enrolled students descending.
func (h *Handler) PopularInstructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.users.PopularInstructors(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if instructors == nil {
		instructors = []model.User{}
	}
	writeJSON(w, http.StatusOK, instructors)
}
