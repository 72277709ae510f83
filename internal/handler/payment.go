package handler

import (
	"net/http"

	"github.com/devart/devart-server/internal/model"
)

// CreatePaymentIntent handles POST /create-payment-intent
// Passes the price through to the payment gateway and returns the
// client-side secret the frontend completes the charge with.
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentIntentRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	secret, err := h.checkout.CreateIntent(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PaymentIntentResponse{ClientSecret: secret})
}

// FinalizePayment handles POST /payments
// Applies the full checkout transition: payment recorded, cart item paid,
// seat consumed, instructor credited.
func (h *Handler) FinalizePayment(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if !callerIs(r, req.Email) {
		writeError(w, http.StatusForbidden, "forbidden access")
		return
	}

	result, err := h.checkout.Finalize(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// PaymentHistory handles GET /paymenthistory?email=
// Returns the caller's payments, most recent first.
func (h *Handler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !callerIs(r, email) {
		writeError(w, http.StatusForbidden, "forbidden access")
		return
	}

	payments, err := h.checkout.History(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if payments == nil {
		payments = []model.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}
