package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/cart"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/service"
	"github.com/shopspring/decimal"
)

// CartSessionHeader carries the anonymous cart id of a guest browser.
const CartSessionHeader = "X-Cart-Session"

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategories(categories))
}

func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	req, err := parseBrowseRequest(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	products, err := h.catalog.Browse(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProducts(products))
}

func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Product(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProduct(product))
}

// parseBrowseRequest reads the view configuration from the query string.
// Facets repeat: ?condition=Fine&condition=Good.
func parseBrowseRequest(q url.Values) (service.BrowseRequest, error) {
	filters := domain.DefaultFilters()
	filters.Category = strings.TrimSpace(q.Get("category"))
	filters.Conditions = q["condition"]
	filters.Rarities = q["rarity"]
	filters.Countries = q["country"]

	for _, bound := range []struct {
		key string
		dst *decimal.Decimal
	}{
		{"min_price", &filters.PriceRange.Low},
		{"max_price", &filters.PriceRange.High},
	} {
		raw := q.Get(bound.key)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return service.BrowseRequest{}, fmt.Errorf("%w: %s[%s] is not a number", domain.ErrInvalidInput, bound.key, raw)
		}
		*bound.dst = v
	}

	return service.BrowseRequest{
		Filters: filters,
		Sort:    domain.ParseSortKey(q.Get("sort")),
		Search:  q.Get("search"),
	}, nil
}

// cartOwner is the signed-in user, else the guest session from the header.
func (h *Handler) cartOwner(r *http.Request) (domain.CartOwner, error) {
	if state, ok := stateFrom(r.Context()); ok {
		return domain.CartOwner{UserID: state.Session.User.ID}, nil
	}

	raw := r.Header.Get(CartSessionHeader)
	if raw == "" {
		return domain.CartOwner{}, fmt.Errorf("%w: %s header is required", domain.ErrInvalidInput, CartSessionHeader)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return domain.CartOwner{}, fmt.Errorf("%w: %s[%s] is not a uuid", domain.ErrInvalidInput, CartSessionHeader, raw)
	}

	return domain.CartOwner{SessionID: id}, nil
}

func (h *Handler) cartStore(r *http.Request) (*cart.Store, error) {
	owner, err := h.cartOwner(r)
	if err != nil {
		return nil, err
	}

	store, err := h.carts.Get(r.Context(), owner.Key())
	if err != nil {
		return nil, fmt.Errorf("carts.Get: %w", err)
	}
	return store, nil
}

// viewCart is cartStore for reads; an empty cart is not kept in memory.
func (h *Handler) viewCart(r *http.Request) (*cart.Store, error) {
	owner, err := h.cartOwner(r)
	if err != nil {
		return nil, err
	}

	store, err := h.carts.View(r.Context(), owner.Key())
	if err != nil {
		return nil, fmt.Errorf("carts.View: %w", err)
	}
	return store, nil
}

func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	store, err := h.viewCart(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCart(store))
}

type addCartItemRequest struct {
	Slug     string `json:"slug"`
	Quantity int    `json:"quantity"`
}

// AddCartItem prices the line from the catalog, never from the client.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		h.writeError(w, r, err)
		return
	}

	store, err := h.cartStore(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.catalog.Product(r.Context(), req.Slug)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !product.InStock() {
		h.writeError(w, r, fmt.Errorf("product[%s]: %w", product.Slug, domain.ErrInsufficientStock))
		return
	}
	if product.Price.Currency != store.Currency() {
		h.writeError(w, r, fmt.Errorf("%w: product[%s] is priced in %s, cart in %s",
			domain.ErrInvalidInput, product.Slug, product.Price.Currency, store.Currency()))
		return
	}

	store.AddItem(r.Context(), product.CartItem(req.Quantity))

	writeJSON(w, http.StatusOK, toCart(store))
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets the line quantity; zero or less removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req updateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Quantity > domain.MaxQuantity {
		h.writeError(w, r, fmt.Errorf("%w: quantity[%d] exceeds %d", domain.ErrInvalidInput, req.Quantity, domain.MaxQuantity))
		return
	}

	store, err := h.cartStore(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	store.UpdateQuantity(r.Context(), id, req.Quantity)

	writeJSON(w, http.StatusOK, toCart(store))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	store, err := h.cartStore(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	store.RemoveItem(r.Context(), id)

	writeJSON(w, http.StatusOK, toCart(store))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, err := h.cartStore(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	store.Clear(r.Context())

	writeJSON(w, http.StatusOK, toCart(store))
}
