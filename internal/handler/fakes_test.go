package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/devart/devart-server/internal/model"
	"github.com/devart/devart-server/internal/repository"
	"github.com/devart/devart-server/internal/service"
	"github.com/devart/devart-server/internal/token"
)

// fakeUserStore serves role lookups and registrations from a map.
type fakeUserStore struct {
	users map[string]*model.User
	err   error
}

func (f *fakeUserStore) Create(_ context.Context, email string, req model.RegisterUserRequest) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.users[email]; ok {
		return nil, repository.ErrDuplicateUser
	}
	u := &model.User{ID: "new", Email: email, Name: req.Name, Role: req.Role, CreatedAt: time.Now().UTC()}
	f.users[email] = u
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(context.Context) ([]model.User, error)            { return nil, f.err }
func (f *fakeUserStore) ListInstructors(context.Context) ([]model.User, error) { return nil, f.err }
func (f *fakeUserStore) PopularInstructors(context.Context, int) ([]model.User, error) {
	return nil, f.err
}
func (f *fakeUserStore) Promote(context.Context, string, model.Role) error { return f.err }

// fakePaymentStore scripts checkout outcomes.
type fakePaymentStore struct {
	result   *model.CheckoutResult
	err      error
	payments []model.Payment
}

func (f *fakePaymentStore) Checkout(context.Context, model.CheckoutRequest) (*model.CheckoutResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakePaymentStore) ListByEmail(context.Context, string) ([]model.Payment, error) {
	return f.payments, f.err
}

// fakeGateway returns a fixed client secret.
type fakeGateway struct {
	secret string
	err    error
}

func (f *fakeGateway) CreatePaymentIntent(context.Context, int64, string) (string, error) {
	return f.secret, f.err
}

// fakeClassStore scripts class persistence outcomes.
type fakeClassStore struct {
	created *model.Class
	classes []model.Class
	err     error
}

func (f *fakeClassStore) Create(_ context.Context, instructorMail string, req model.CreateClassRequest) (*model.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := &model.Class{ID: "new", Name: req.Name, InstructorMail: instructorMail, Status: model.ClassPending}
	f.created = c
	return c, nil
}

func (f *fakeClassStore) ListApproved(context.Context) ([]model.Class, error) { return f.classes, f.err }
func (f *fakeClassStore) ListAll(context.Context) ([]model.Class, error)      { return f.classes, f.err }
func (f *fakeClassStore) ListByInstructor(context.Context, string) ([]model.Class, error) {
	return f.classes, f.err
}
func (f *fakeClassStore) Popular(context.Context, int) ([]model.Class, error) {
	return f.classes, f.err
}
func (f *fakeClassStore) SetStatus(context.Context, string, string) error   { return f.err }
func (f *fakeClassStore) SetFeedback(context.Context, string, string) error { return f.err }

// fakeCartStore scripts cart persistence outcomes.
type fakeCartStore struct {
	added *model.CartItem
	items []model.CartItem
	err   error
}

func (f *fakeCartStore) Add(_ context.Context, userEmail string, req model.AddCartItemRequest) (*model.CartItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	it := &model.CartItem{ID: "new", UserEmail: userEmail, ClassID: req.ClassID, Status: model.CartSelected}
	f.added = it
	return it, nil
}

func (f *fakeCartStore) ListByStatus(context.Context, string, string) ([]model.CartItem, error) {
	return f.items, f.err
}
func (f *fakeCartStore) GetByID(context.Context, string) (*model.CartItem, error) {
	return nil, f.err
}
func (f *fakeCartStore) Delete(context.Context, string) error { return f.err }

// chiRouteContext injects a URL parameter the way chi's router would.
func chiRouteContext(key, value string) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
}

type handlerDeps struct {
	users    *fakeUserStore
	classes  *fakeClassStore
	cart     *fakeCartStore
	payments *fakePaymentStore
	codec    *token.Codec
}

// newTestHandler wires a Handler over fakes.
func newTestHandler(users *fakeUserStore, payments *fakePaymentStore, gw *fakeGateway) (*Handler, handlerDeps) {
	if users == nil {
		users = &fakeUserStore{users: make(map[string]*model.User)}
	}
	if payments == nil {
		payments = &fakePaymentStore{}
	}
	if gw == nil {
		gw = &fakeGateway{secret: "pi_test_secret"}
	}
	classes := &fakeClassStore{}
	cart := &fakeCartStore{}

	codec := token.NewCodec("test-secret", time.Hour)
	h := New(
		zap.NewNop(),
		service.NewAuthService(codec, users),
		service.NewUserService(users),
		service.NewClassService(classes),
		service.NewCartService(cart),
		service.NewCheckoutService(payments, gw),
	)
	return h, handlerDeps{users: users, classes: classes, cart: cart, payments: payments, codec: codec}
}
