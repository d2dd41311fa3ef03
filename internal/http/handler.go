package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/auth"
	"github.com/nikolayk812/coinvault/internal/cart"
	"github.com/nikolayk812/coinvault/internal/catalog"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/service"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Catalog interface {
	Browse(ctx context.Context, req service.BrowseRequest) ([]domain.Product, error)
	Product(ctx context.Context, slug string) (domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

type Checkout interface {
	PlaceOrder(ctx context.Context, owner domain.CartOwner, req service.CheckoutRequest) (domain.Order, error)
	Orders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}

type Admin interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	Products(ctx context.Context, search string) ([]domain.Product, error)
	SetStock(ctx context.Context, id int64, raw string) error
	Inventory(ctx context.Context, search string, mode catalog.InventoryMode) (service.InventoryView, error)
	Orders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Order(ctx context.Context, id int64) (domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, status string, trackingNumber *string) (domain.Order, error)
	Dashboard(ctx context.Context) (service.Dashboard, error)
	Analytics(ctx context.Context) (service.Analytics, error)
}

type Auth interface {
	SignIn(ctx context.Context, email, password string) (auth.State, error)
	SignUp(ctx context.Context, email, password, fullName string) (domain.User, error)
	SignOut(ctx context.Context, accessToken string)
	Authenticate(ctx context.Context, accessToken string) (auth.State, error)
	UpdateProfile(ctx context.Context, accessToken string, update domain.ProfileUpdate) (domain.Profile, error)
}

type Deps struct {
	Catalog  Catalog
	Checkout Checkout
	Admin    Admin
	Auth     Auth
	Carts    *cart.Registry
	Currency currency.Unit
	Logger   *zap.Logger
}

type Handler struct {
	catalog  Catalog
	checkout Checkout
	admin    Admin
	auth     Auth
	carts    *cart.Registry
	currency currency.Unit
	logger   *zap.Logger
	started  time.Time
}

func NewHandler(deps Deps) (*Handler, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if deps.Checkout == nil {
		return nil, fmt.Errorf("checkout is nil")
	}
	if deps.Admin == nil {
		return nil, fmt.Errorf("admin is nil")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("auth is nil")
	}
	if deps.Carts == nil {
		return nil, fmt.Errorf("carts is nil")
	}

	h := &Handler{
		catalog:  deps.Catalog,
		checkout: deps.Checkout,
		admin:    deps.Admin,
		auth:     deps.Auth,
		carts:    deps.Carts,
		currency: deps.Currency,
		logger:   deps.Logger,
		started:  time.Now(),
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.currency == (currency.Unit{}) {
		h.currency = currency.USD
	}

	return h, nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
