package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devart/devart-server/internal/model"
	"github.com/devart/devart-server/internal/repository"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	users       map[string]*model.User
	lastLimit   int
	promoteByID map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:       make(map[string]*model.User),
		promoteByID: make(map[string]*model.User),
	}
}

func (f *fakeUserStore) put(u *model.User) {
	f.users[u.Email] = u
	f.promoteByID[u.ID] = u
}

func (f *fakeUserStore) Create(_ context.Context, email string, req model.RegisterUserRequest) (*model.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, repository.ErrDuplicateUser
	}
	u := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      req.Name,
		Role:      req.Role,
		CreatedAt: time.Now().UTC(),
	}
	f.put(u)
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) ListInstructors(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role == model.RoleInstructor {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) PopularInstructors(ctx context.Context, limit int) ([]model.User, error) {
	f.lastLimit = limit
	return f.ListInstructors(ctx)
}

func (f *fakeUserStore) Promote(_ context.Context, id string, role model.Role) error {
	u, ok := f.promoteByID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	if role == model.RoleInstructor {
		u.EnrolledStudents = 0
	}
	return nil
}

// fakePaymentStore scripts the outcome of Checkout.
type fakePaymentStore struct {
	result   *model.CheckoutResult
	err      error
	lastReq  model.CheckoutRequest
	payments []model.Payment
}

func (f *fakePaymentStore) Checkout(_ context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePaymentStore) ListByEmail(_ context.Context, email string) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeGateway records the amount it was asked to cover.
type fakeGateway struct {
	secret     string
	err        error
	lastAmount int64
	lastCurr   string
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.lastAmount = amount
	f.lastCurr = currency
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}
