package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type OrderStats struct {
	TotalOrders  int
	TotalRevenue domain.Money
	Pending      int
	Processing   int
	Shipped      int
	Delivered    int
	Cancelled    int
}

// Stats counts orders per status. Revenue only includes orders whose
// payment completed.
func Stats(orders []domain.Order, unit currency.Unit) OrderStats {
	stats := OrderStats{
		TotalOrders:  len(orders),
		TotalRevenue: domain.NewMoney(decimal.Zero, unit),
	}

	for _, o := range orders {
		if o.PaymentStatus == domain.PaymentCompleted {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		}

		switch o.OrderStatus {
		case domain.OrderPending:
			stats.Pending++
		case domain.OrderProcessing:
			stats.Processing++
		case domain.OrderShipped:
			stats.Shipped++
		case domain.OrderDelivered:
			stats.Delivered++
		case domain.OrderCancelled:
			stats.Cancelled++
		}
	}

	return stats
}

// AverageOrderValue is completed revenue over all orders, rounded to whole
// currency units.
func (s OrderStats) AverageOrderValue() domain.Money {
	if s.TotalOrders == 0 {
		return domain.NewMoney(decimal.Zero, s.TotalRevenue.Currency)
	}
	avg := s.TotalRevenue.Amount.Div(decimal.NewFromInt(int64(s.TotalOrders))).Round(0)
	return domain.NewMoney(avg, s.TotalRevenue.Currency)
}

type MonthRevenue struct {
	Month   time.Time
	Revenue domain.Money
}

// MonthlyRevenue buckets completed revenue into the last months calendar
// months ending with the month of now, oldest first.
func MonthlyRevenue(orders []domain.Order, now time.Time, months int, unit currency.Unit) []MonthRevenue {
	if months <= 0 {
		return nil
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	result := make([]MonthRevenue, months)
	for i := range months {
		result[i] = MonthRevenue{
			Month:   start.AddDate(0, i-months+1, 0),
			Revenue: domain.NewMoney(decimal.Zero, unit),
		}
	}

	for _, o := range orders {
		if o.PaymentStatus != domain.PaymentCompleted {
			continue
		}
		created := o.CreatedAt.In(now.Location())
		month := time.Date(created.Year(), created.Month(), 1, 0, 0, 0, 0, now.Location())

		for i := range result {
			if result[i].Month.Equal(month) {
				result[i].Revenue = result[i].Revenue.Add(o.Total)
				break
			}
		}
	}

	return result
}

type ProductSales struct {
	Name    string
	Units   int
	Revenue domain.Money
}

// TopProducts ranks order lines by revenue per product name, highest first,
// and keeps at most n entries.
func TopProducts(orders []domain.Order, n int, unit currency.Unit) []ProductSales {
	var sales []ProductSales
	index := map[string]int{}

	for _, o := range orders {
		for _, item := range o.Items {
			i, ok := index[item.ProductName]
			if !ok {
				i = len(sales)
				index[item.ProductName] = i
				sales = append(sales, ProductSales{
					Name:    item.ProductName,
					Revenue: domain.NewMoney(decimal.Zero, unit),
				})
			}
			sales[i].Units += item.Quantity
			sales[i].Revenue = sales[i].Revenue.Add(item.Subtotal())
		}
	}

	slices.SortStableFunc(sales, func(a, b ProductSales) int {
		return b.Revenue.Amount.Cmp(a.Revenue.Amount)
	})

	if n >= 0 && len(sales) > n {
		sales = sales[:n]
	}
	return sales
}

// UniqueCustomers counts distinct customer emails.
func UniqueCustomers(orders []domain.Order) int {
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		seen[o.Customer.Email] = struct{}{}
	}
	return len(seen)
}

// FilterOrders keeps orders whose customer name, email or id contains the
// search text and whose status matches, when set.
func FilterOrders(orders []domain.Order, f domain.OrderFilter) []domain.Order {
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	result := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if f.Status != nil && o.OrderStatus != *f.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(o.Customer.Name), needle) &&
			!strings.Contains(strings.ToLower(o.Customer.Email), needle) &&
			!strings.Contains(strconv.FormatInt(o.ID, 10), needle) {
			continue
		}
		result = append(result, o)
	}

	return result
}

// Recent returns the n newest orders, newest first.
func Recent(orders []domain.Order, n int) []domain.Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b domain.Order) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
