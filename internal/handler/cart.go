package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devart/devart-server/internal/model"
)

// AddCartItem handles POST /cart/{email}
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req model.AddCartItemRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	item, err := h.cart.Add(r.Context(), email, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// ListCart handles GET /cart?email=
// Returns the caller's still-selected items.
func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request) {
	h.listCartByStatus(w, r, model.CartSelected)
}

// ListEnrolled handles GET /enrolled?email=
// Returns the cart items the caller has paid for.
func (h *Handler) ListEnrolled(w http.ResponseWriter, r *http.Request) {
	h.listCartByStatus(w, r, model.CartPaid)
}

func (h *Handler) listCartByStatus(w http.ResponseWriter, r *http.Request, status string) {
	email := r.URL.Query().Get("email")
	if !callerIs(r, email) {
		writeError(w, http.StatusForbidden, "forbidden access")
		return
	}

	var items []model.CartItem
	var err error
	if status == model.CartSelected {
		items, err = h.cart.Selected(r.Context(), email)
	} else {
		items, err = h.cart.Enrolled(r.Context(), email)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if items == nil {
		items = []model.CartItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetCartItem handles GET /cart/{id}
func (h *Handler) GetCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.cart.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteCartItem handles DELETE /cart/{id}
// Only still-selected items can be removed; paid ones are kept as the
// record of an enrollment.
func (h *Handler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.cart.Remove(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "deleted": "true"})
}
