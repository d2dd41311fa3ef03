package httpapi

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/auth"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/service"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func usd(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), currency.USD)
}

func ptr[T any](v T) *T {
	return &v
}

type fakeCatalog struct {
	mu       sync.Mutex
	products []domain.Product
	requests []service.BrowseRequest
	err      error
}

func (f *fakeCatalog) Browse(_ context.Context, req service.BrowseRequest) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalog) Product(_ context.Context, slug string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f *fakeCatalog) Categories(context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Name: "Old Coins", Slug: "coins"}}, nil
}

type fakeCheckout struct {
	mu     sync.Mutex
	owners []domain.CartOwner
	err    error
}

func (f *fakeCheckout) PlaceOrder(_ context.Context, owner domain.CartOwner, req service.CheckoutRequest) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.owners = append(f.owners, owner)
	if f.err != nil {
		return domain.Order{}, f.err
	}
	if err := req.Validate(); err != nil {
		return domain.Order{}, err
	}
	return domain.Order{
		ID:            7,
		Customer:      req.Customer,
		Shipping:      req.Shipping,
		Total:         usd("120"),
		PaymentStatus: domain.PaymentPending,
		OrderStatus:   domain.OrderPending,
	}, nil
}

func (f *fakeCheckout) Orders(_ context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return []domain.Order{{ID: 1, UserID: &userID, Total: usd("10")}}, nil
}

const (
	customerToken = "customer-token"
	adminToken    = "admin-token"
)

var (
	customerID = uuid.MustParse("6f1c2f43-5a0e-4c53-9a3d-3b5a0c2e7d11")
	adminID    = uuid.MustParse("0b7a4c0e-98f4-4a53-8f0f-4f7c2e0d9a22")
)

type fakeAuth struct {
	mu         sync.Mutex
	signedOut  []string
	signInErr  error
	profileErr error
}

func (f *fakeAuth) state(token string) (auth.State, bool) {
	switch token {
	case customerToken:
		return auth.State{
			Session: domain.Session{AccessToken: token, User: domain.User{ID: customerID, Email: "ada@example.com"}},
			Profile: &domain.Profile{ID: customerID, Email: "ada@example.com", Role: domain.RoleCustomer},
		}, true
	case adminToken:
		return auth.State{
			Session: domain.Session{AccessToken: token, User: domain.User{ID: adminID, Email: "grace@example.com"}},
			Profile: &domain.Profile{ID: adminID, Email: "grace@example.com", Role: domain.RoleAdmin},
		}, true
	}
	return auth.State{}, false
}

func (f *fakeAuth) SignIn(_ context.Context, email, _ string) (auth.State, error) {
	if f.signInErr != nil {
		return auth.State{}, f.signInErr
	}
	state, _ := f.state(customerToken)
	state.Session.ExpiresAt = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	state.Session.User.Email = email
	return state, nil
}

func (f *fakeAuth) SignUp(_ context.Context, email, _, _ string) (domain.User, error) {
	return domain.User{ID: customerID, Email: email}, nil
}

func (f *fakeAuth) SignOut(_ context.Context, accessToken string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = append(f.signedOut, accessToken)
}

func (f *fakeAuth) Authenticate(_ context.Context, accessToken string) (auth.State, error) {
	if state, ok := f.state(accessToken); ok {
		return state, nil
	}
	return auth.State{}, domain.ErrUnauthorized
}

func (f *fakeAuth) UpdateProfile(_ context.Context, accessToken string, update domain.ProfileUpdate) (domain.Profile, error) {
	if f.profileErr != nil {
		return domain.Profile{}, f.profileErr
	}
	state, _ := f.state(accessToken)
	profile := *state.Profile
	profile.FullName = update.FullName
	profile.Phone = update.Phone
	return profile, nil
}

// fakeAdmin implements the calls the tests make; anything else panics
// through the nil embedded interface.
type fakeAdmin struct {
	Admin

	mu       sync.Mutex
	stock    map[int64]string
	created  []domain.ProductInput
	updates  []domain.ProductUpdate
	filters  []domain.OrderFilter
	deleteOK bool
}

func (f *fakeAdmin) Dashboard(context.Context) (service.Dashboard, error) {
	return service.Dashboard{
		LowStock: []domain.Product{{ID: 2, Name: "Assignat", Price: usd("20"), StockQuantity: 3}},
	}, nil
}

func (f *fakeAdmin) CreateProduct(_ context.Context, in domain.ProductInput) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, in)
	return domain.Product{ID: 9, Name: in.Name, Slug: domain.Slugify(in.Name), Price: in.Price, IsActive: in.IsActive}, nil
}

func (f *fakeAdmin) UpdateProduct(_ context.Context, id int64, update domain.ProductUpdate) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates = append(f.updates, update)
	return domain.Product{ID: id, Name: "Updated", Price: usd("1")}, nil
}

func (f *fakeAdmin) DeleteProduct(_ context.Context, id int64) error {
	if !f.deleteOK {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakeAdmin) SetStock(_ context.Context, id int64, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if raw == "ten" {
		return domain.ErrInvalidInput
	}
	if f.stock == nil {
		f.stock = make(map[int64]string)
	}
	f.stock[id] = raw
	return nil
}

func (f *fakeAdmin) Orders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.filters = append(f.filters, filter)
	return nil, nil
}

func (f *fakeAdmin) Analytics(context.Context) (service.Analytics, error) {
	return service.Analytics{}, errors.New("orders.ListOrders: connection refused")
}

type memoryStorage struct {
	mu    sync.Mutex
	items map[string][]domain.CartItem
}

func (m *memoryStorage) Load(_ context.Context, key string) ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.items[key]), nil
}

func (m *memoryStorage) Save(_ context.Context, key string, items []domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.items == nil {
		m.items = make(map[string][]domain.CartItem)
	}
	m.items[key] = slices.Clone(items)
	return nil
}
