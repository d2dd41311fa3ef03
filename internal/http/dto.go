package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/auth"
	"github.com/nikolayk812/coinvault/internal/cart"
	"github.com/nikolayk812/coinvault/internal/catalog"
	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/service"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoney(m domain.Money) moneyJSON {
	return moneyJSON{Amount: m.Amount.StringFixed(2), Currency: m.Currency.String()}
}

func parseMoney(raw string, unit currency.Unit) (domain.Money, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: price[%s] is not a number", domain.ErrInvalidInput, raw)
	}
	return domain.NewMoney(amount, unit), nil
}

type categoryRefJSON struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type productJSON struct {
	ID                   int64            `json:"id"`
	Slug                 string           `json:"slug"`
	Name                 string           `json:"name"`
	CategoryID           *int64           `json:"category_id,omitempty"`
	Category             *categoryRefJSON `json:"category,omitempty"`
	Description          *string          `json:"description,omitempty"`
	Price                moneyJSON        `json:"price"`
	StockQuantity        int              `json:"stock_quantity"`
	StockLevel           string           `json:"stock_level"`
	Condition            *string          `json:"condition,omitempty"`
	Year                 *int             `json:"year,omitempty"`
	Country              *string          `json:"country,omitempty"`
	Rarity               *string          `json:"rarity,omitempty"`
	CertificationDetails *string          `json:"certification_details,omitempty"`
	Images               []string         `json:"images"`
	IsActive             bool             `json:"is_active"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

func toProduct(p domain.Product) productJSON {
	out := productJSON{
		ID:                   p.ID,
		Slug:                 p.Slug,
		Name:                 p.Name,
		CategoryID:           p.CategoryID,
		Description:          p.Description,
		Price:                toMoney(p.Price),
		StockQuantity:        p.StockQuantity,
		StockLevel:           string(catalog.StockLevelOf(p.StockQuantity)),
		Year:                 p.Year,
		Country:              p.Country,
		CertificationDetails: p.CertificationDetails,
		Images:               p.Images,
		IsActive:             p.IsActive,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if p.Category != nil {
		out.Category = &categoryRefJSON{Name: p.Category.Name, Slug: p.Category.Slug}
	}
	if p.Condition != nil {
		s := string(*p.Condition)
		out.Condition = &s
	}
	if p.Rarity != nil {
		s := string(*p.Rarity)
		out.Rarity = &s
	}
	return out
}

func toProducts(products []domain.Product) []productJSON {
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProduct(p))
	}
	return out
}

type categoryJSON struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

func toCategories(categories []domain.Category) []categoryJSON {
	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryJSON{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description})
	}
	return out
}

type cartItemJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     moneyJSON `json:"price"`
	Quantity  int       `json:"quantity"`
	Subtotal  moneyJSON `json:"subtotal"`
	Image     string    `json:"image,omitempty"`
	Condition string    `json:"condition,omitempty"`
	Year      int       `json:"year,omitempty"`
}

type cartJSON struct {
	Items     []cartItemJSON `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     moneyJSON      `json:"total"`
}

func toCart(store *cart.Store) cartJSON {
	items := store.Items()

	out := cartJSON{
		Items:     make([]cartItemJSON, 0, len(items)),
		ItemCount: store.ItemCount(),
		Total:     toMoney(store.Total()),
	}
	for _, item := range items {
		out.Items = append(out.Items, cartItemJSON{
			ID:        item.ID,
			Name:      item.Name,
			Price:     toMoney(item.Price),
			Quantity:  item.Quantity,
			Subtotal:  toMoney(item.Subtotal()),
			Image:     item.Image,
			Condition: item.Condition,
			Year:      item.Year,
		})
	}
	return out
}

type customerJSON struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type shippingJSON struct {
	Line1   string  `json:"line1"`
	Line2   *string `json:"line2,omitempty"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Zip     string  `json:"zip"`
	Country string  `json:"country"`
}

type orderItemJSON struct {
	ID          int64     `json:"id"`
	ProductID   *int64    `json:"product_id,omitempty"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       moneyJSON `json:"price"`
	Subtotal    moneyJSON `json:"subtotal"`
}

type orderJSON struct {
	ID             int64           `json:"id"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	Customer       customerJSON    `json:"customer"`
	Shipping       shippingJSON    `json:"shipping"`
	Total          moneyJSON       `json:"total"`
	PaymentStatus  string          `json:"payment_status"`
	OrderStatus    string          `json:"order_status"`
	PaymentID      *string         `json:"payment_id,omitempty"`
	TrackingNumber *string         `json:"tracking_number,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	Items          []orderItemJSON `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toOrder(o domain.Order) orderJSON {
	out := orderJSON{
		ID:             o.ID,
		UserID:         o.UserID,
		Customer:       customerJSON(o.Customer),
		Shipping:       shippingJSON(o.Shipping),
		Total:          toMoney(o.Total),
		PaymentStatus:  string(o.PaymentStatus),
		OrderStatus:    string(o.OrderStatus),
		PaymentID:      o.PaymentID,
		TrackingNumber: o.TrackingNumber,
		Notes:          o.Notes,
		Items:          make([]orderItemJSON, 0, len(o.Items)),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, orderItemJSON{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       toMoney(item.Price),
			Subtotal:    toMoney(item.Subtotal()),
		})
	}
	return out
}

func toOrders(orders []domain.Order) []orderJSON {
	out := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	return out
}

type userJSON struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type profileJSON struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName *string   `json:"full_name,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Role     string    `json:"role"`
}

func toProfile(p *domain.Profile) *profileJSON {
	if p == nil {
		return nil
	}
	return &profileJSON{
		ID:       p.ID,
		Email:    p.Email,
		FullName: p.FullName,
		Phone:    p.Phone,
		Role:     string(p.Role),
	}
}

type meJSON struct {
	User    userJSON     `json:"user"`
	Profile *profileJSON `json:"profile"`
	IsAdmin bool         `json:"is_admin"`
}

type sessionJSON struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	meJSON
}

func toMe(state auth.State) meJSON {
	return meJSON{
		User:    userJSON(state.Session.User),
		Profile: toProfile(state.Profile),
		IsAdmin: state.IsAdmin(),
	}
}

func toSession(state auth.State) sessionJSON {
	return sessionJSON{
		AccessToken:  state.Session.AccessToken,
		RefreshToken: state.Session.RefreshToken,
		ExpiresAt:    state.Session.ExpiresAt,
		meJSON:       toMe(state),
	}
}

type statsJSON struct {
	TotalOrders  int       `json:"total_orders"`
	TotalRevenue moneyJSON `json:"total_revenue"`
	Pending      int       `json:"pending"`
	Processing   int       `json:"processing"`
	Shipped      int       `json:"shipped"`
	Delivered    int       `json:"delivered"`
	Cancelled    int       `json:"cancelled"`
}

func toStats(s catalog.OrderStats) statsJSON {
	return statsJSON{
		TotalOrders:  s.TotalOrders,
		TotalRevenue: toMoney(s.TotalRevenue),
		Pending:      s.Pending,
		Processing:   s.Processing,
		Shipped:      s.Shipped,
		Delivered:    s.Delivered,
		Cancelled:    s.Cancelled,
	}
}

type dashboardJSON struct {
	Stats        statsJSON     `json:"stats"`
	RecentOrders []orderJSON   `json:"recent_orders"`
	LowStock     []productJSON `json:"low_stock"`
}

func toDashboard(d service.Dashboard) dashboardJSON {
	return dashboardJSON{
		Stats:        toStats(d.Stats),
		RecentOrders: toOrders(d.RecentOrders),
		LowStock:     toProducts(d.LowStock),
	}
}

type monthRevenueJSON struct {
	Month   string    `json:"month"`
	Revenue moneyJSON `json:"revenue"`
}

type productSalesJSON struct {
	Name    string    `json:"name"`
	Units   int       `json:"units"`
	Revenue moneyJSON `json:"revenue"`
}

type analyticsJSON struct {
	Stats             statsJSON          `json:"stats"`
	MonthlyRevenue    []monthRevenueJSON `json:"monthly_revenue"`
	TopProducts       []productSalesJSON `json:"top_products"`
	UniqueCustomers   int                `json:"unique_customers"`
	AverageOrderValue moneyJSON          `json:"average_order_value"`
}

func toAnalytics(a service.Analytics) analyticsJSON {
	out := analyticsJSON{
		Stats:             toStats(a.Stats),
		MonthlyRevenue:    make([]monthRevenueJSON, 0, len(a.MonthlyRevenue)),
		TopProducts:       make([]productSalesJSON, 0, len(a.TopProducts)),
		UniqueCustomers:   a.UniqueCustomers,
		AverageOrderValue: toMoney(a.AverageOrderValue),
	}
	for _, m := range a.MonthlyRevenue {
		out.MonthlyRevenue = append(out.MonthlyRevenue, monthRevenueJSON{
			Month:   m.Month.Format("2006-01"),
			Revenue: toMoney(m.Revenue),
		})
	}
	for _, p := range a.TopProducts {
		out.TopProducts = append(out.TopProducts, productSalesJSON{
			Name:    p.Name,
			Units:   p.Units,
			Revenue: toMoney(p.Revenue),
		})
	}
	return out
}

type inventorySummaryJSON struct {
	OutOfStock int       `json:"out_of_stock"`
	LowStock   int       `json:"low_stock"`
	TotalValue moneyJSON `json:"total_value"`
}

type inventoryJSON struct {
	Products []productJSON        `json:"products"`
	Summary  inventorySummaryJSON `json:"summary"`
}

func toInventory(v service.InventoryView) inventoryJSON {
	return inventoryJSON{
		Products: toProducts(v.Products),
		Summary: inventorySummaryJSON{
			OutOfStock: v.Summary.OutOfStock,
			LowStock:   v.Summary.LowStock,
			TotalValue: toMoney(v.Summary.TotalValue),
		},
	}
}
