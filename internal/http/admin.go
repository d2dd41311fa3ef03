package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nikolayk812/coinvault/internal/catalog"
	"github.com/nikolayk812/coinvault/internal/domain"
	"golang.org/x/text/currency"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.admin.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDashboard(dashboard))
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.admin.Analytics(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnalytics(analytics))
}

func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view, err := h.admin.Inventory(r.Context(), q.Get("search"), catalog.ParseInventoryMode(q.Get("mode")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toInventory(view))
}

func (h *Handler) AdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.admin.Products(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProducts(products))
}

type productRequest struct {
	Name                 *string `json:"name"`
	Slug                 *string `json:"slug"`
	CategoryID           *int64  `json:"category_id"`
	Description          *string `json:"description"`
	Price                *string `json:"price"`
	StockQuantity        *int    `json:"stock_quantity"`
	Condition            *string `json:"condition"`
	Year                 *int    `json:"year"`
	Country              *string `json:"country"`
	Rarity               *string `json:"rarity"`
	CertificationDetails *string `json:"certification_details"`
	IsActive             *bool   `json:"is_active"`
	ImageURL             *string `json:"image_url"`
}

// update converts the request into a partial update; absent fields keep
// their stored value.
func (req productRequest) update(unit currency.Unit) (domain.ProductUpdate, error) {
	update := domain.ProductUpdate{
		Name:                 req.Name,
		Slug:                 req.Slug,
		CategoryID:           req.CategoryID,
		Description:          req.Description,
		StockQuantity:        req.StockQuantity,
		Year:                 req.Year,
		Country:              req.Country,
		CertificationDetails: req.CertificationDetails,
		IsActive:             req.IsActive,
	}

	if req.Price != nil {
		price, err := parseMoney(*req.Price, unit)
		if err != nil {
			return domain.ProductUpdate{}, err
		}
		update.Price = &price
	}
	if req.Condition != nil {
		condition, err := domain.ParseCondition(*req.Condition)
		if err != nil {
			return domain.ProductUpdate{}, err
		}
		update.Condition = &condition
	}
	if req.Rarity != nil {
		rarity, err := domain.ParseRarity(*req.Rarity)
		if err != nil {
			return domain.ProductUpdate{}, err
		}
		update.Rarity = &rarity
	}

	return update, nil
}

func (req productRequest) input(unit currency.Unit) (domain.ProductInput, error) {
	if req.Name == nil {
		return domain.ProductInput{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if req.Price == nil {
		return domain.ProductInput{}, fmt.Errorf("%w: price is required", domain.ErrInvalidInput)
	}

	update, err := req.update(unit)
	if err != nil {
		return domain.ProductInput{}, err
	}

	in := domain.ProductInput{
		Name:                 *update.Name,
		CategoryID:           update.CategoryID,
		Description:          update.Description,
		Price:                *update.Price,
		Condition:            update.Condition,
		Year:                 update.Year,
		Country:              update.Country,
		Rarity:               update.Rarity,
		CertificationDetails: update.CertificationDetails,
		IsActive:             true,
		ImageURL:             req.ImageURL,
	}
	if update.Slug != nil {
		in.Slug = *update.Slug
	}
	if update.StockQuantity != nil {
		in.StockQuantity = *update.StockQuantity
	}
	if update.IsActive != nil {
		in.IsActive = *update.IsActive
	}
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) == "" {
		in.ImageURL = nil
	}

	return in, nil
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	in, err := req.input(h.currency)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.admin.CreateProduct(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProduct(product))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	update, err := req.update(h.currency)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.admin.UpdateProduct(r.Context(), id, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProduct(product))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.admin.DeleteProduct(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type stockRequest struct {
	// Quantity is the text typed by the admin; it is parsed server side.
	Quantity string `json:"quantity"`
}

func (h *Handler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.admin.SetStock(r.Context(), id, req.Quantity); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.OrderFilter{Search: q.Get("search")}
	if raw := q.Get("status"); raw != "" && raw != "all" {
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Status = &status
	}

	orders, err := h.admin.Orders(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrders(orders))
}

func (h *Handler) AdminOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.admin.Order(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrder(order))
}

type orderUpdateRequest struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"tracking_number"`
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req orderUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.admin.UpdateOrder(r.Context(), id, req.Status, req.TrackingNumber)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrder(order))
}
