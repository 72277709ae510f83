package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devart/devart-server/internal/model"
	"github.com/devart/devart-server/internal/repository"
)

const checkoutBody = `{
	"email": "u@x.com",
	"cartID": "C1",
	"classID": "L1",
	"instructor_mail": "i1@x.com",
	"price": 50
}`

func asCaller(req *http.Request, email string) *http.Request {
	return req.WithContext(withIdentity(req.Context(), email))
}

func TestFinalizePayment(t *testing.T) {
	tests := []struct {
		name           string
		caller         string
		body           string
		storeResult    *model.CheckoutResult
		storeErr       error
		expectedStatus int
	}{
		{
			name:   "successful checkout",
			caller: "u@x.com",
			body:   checkoutBody,
			storeResult: &model.CheckoutResult{
				Payment:            model.Payment{ID: "p1", Email: "u@x.com", Price: 50},
				CartStatus:         model.CartPaid,
				SeatsRemaining:     4,
				InstructorEnrolled: 11,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "caller cannot pay for someone else",
			caller:         "mallory@x.com",
			body:           checkoutBody,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "sold out class",
			caller:         "u@x.com",
			body:           checkoutBody,
			storeErr:       repository.ErrSoldOut,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "cart item already paid",
			caller:         "u@x.com",
			body:           checkoutBody,
			storeErr:       repository.ErrAlreadyPaid,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown class",
			caller:         "u@x.com",
			body:           checkoutBody,
			storeErr:       repository.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed body",
			caller:         "u@x.com",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(nil, &fakePaymentStore{result: tt.storeResult, err: tt.storeErr}, nil)

			req := asCaller(httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(tt.body)), tt.caller)
			rec := httptest.NewRecorder()

			h.FinalizePayment(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusCreated {
				var result model.CheckoutResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
				assert.Equal(t, model.CartPaid, result.CartStatus)
				assert.Equal(t, 4, result.SeatsRemaining)
				assert.Equal(t, 11, result.InstructorEnrolled)
				assert.Equal(t, float64(50), result.Payment.Price)
			}
		})
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	h, _ := newTestHandler(nil, nil, &fakeGateway{secret: "pi_123_secret"})

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price": 50}`))
	rec := httptest.NewRecorder()

	h.CreatePaymentIntent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.PaymentIntentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pi_123_secret", resp.ClientSecret)
}

func TestPaymentHistoryGuardsEmail(t *testing.T) {
	store := &fakePaymentStore{payments: []model.Payment{{ID: "p1", Email: "u@x.com"}}}
	h, _ := newTestHandler(nil, store, nil)

	// Matching caller sees their history.
	req := asCaller(httptest.NewRequest(http.MethodGet, "/paymenthistory?email=u@x.com", nil), "u@x.com")
	rec := httptest.NewRecorder()
	h.PaymentHistory(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Another caller is rejected.
	req = asCaller(httptest.NewRequest(http.MethodGet, "/paymenthistory?email=u@x.com", nil), "other@x.com")
	rec = httptest.NewRecorder()
	h.PaymentHistory(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterUserConflict(t *testing.T) {
	users := &fakeUserStore{users: map[string]*model.User{
		"alice@example.com": {ID: "u1", Email: "alice@example.com"},
	}}
	h, _ := newTestHandler(users, nil, nil)

	r := httptest.NewRequest(http.MethodPost, "/user/alice@example.com", strings.NewReader(`{"name":"Alice"}`))
	rctx := chiRouteContext("email", "alice@example.com")
	rec := httptest.NewRecorder()

	h.RegisterUser(rec, r.WithContext(rctx(r.Context())))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, users.users, 1)
}
