package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devart/devart-server/internal/model"
)

// ListClasses handles GET /classes
// Returns the approved classes students can enroll in.
func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.Approved(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeClasses(w, classes)
}

// ListAllClasses handles GET /allclass (admin)
// Returns every class including pending and denied ones.
func (h *Handler) ListAllClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.All(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeClasses(w, classes)
}

// PopularClasses handles GET /popularclasses
// Returns at most six classes ordered by enrolled students descending.
func (h *Handler) PopularClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.Popular(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeClasses(w, classes)
}

// CreateClass handles POST /classes/{email} (instructor)
// The new class starts pending until an admin approves it.
func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !callerIs(r, email) {
		writeError(w, http.StatusForbidden, "forbidden access")
		return
	}

	var req model.CreateClassRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	class, err := h.classes.Create(r.Context(), email, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, class)
}

// MyClasses handles GET /myclass/{email} (instructor)
func (h *Handler) MyClasses(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !callerIs(r, email) {
		writeError(w, http.StatusForbidden, "forbidden access")
		return
	}

	classes, err := h.classes.Mine(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeClasses(w, classes)
}

// ApproveClass handles PUT /approveclass/{id} (admin)
func (h *Handler) ApproveClass(w http.ResponseWriter, r *http.Request) {
	h.setClassStatus(w, r, model.ClassApproved)
}

// DenyClass handles PUT /denyclass/{id} (admin)
func (h *Handler) DenyClass(w http.ResponseWriter, r *http.Request) {
	h.setClassStatus(w, r, model.ClassDenied)
}

func (h *Handler) setClassStatus(w http.ResponseWriter, r *http.Request, status string) {
	id := chi.URLParam(r, "id")

	var err error
	if status == model.ClassApproved {
		err = h.classes.Approve(r.Context(), id)
	} else {
		err = h.classes.Deny(r.Context(), id)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": status})
}

// ClassFeedback handles PUT /feedback/{id} (admin)
func (h *Handler) ClassFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.FeedbackRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.classes.Feedback(r.Context(), id, req); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "feedback": req.Feedback})
}

// Return an empty array rather than null for better client compatibility.
func writeClasses(w http.ResponseWriter, classes []model.Class) {
	if classes == nil {
		classes = []model.Class{}
	}
	writeJSON(w, http.StatusOK, classes)
}
