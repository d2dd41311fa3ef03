// Package cart holds the shopping cart state of one owner and writes every
// change through to a durable key-value store.
package cart

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Store struct {
	key      string
	storage  port.CartStorage
	currency currency.Unit
	logger   *zap.Logger

	mu    sync.Mutex
	items []domain.CartItem
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCurrency sets the currency totals are reported in. Defaults to USD.
func WithCurrency(unit currency.Unit) Option {
	return func(s *Store) {
		s.currency = unit
	}
}

// Open hydrates a store from storage under key.
func Open(ctx context.Context, storage port.CartStorage, key string, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is nil")
	}
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	s := &Store{
		key:      key,
		storage:  storage,
		currency: currency.USD,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := storage.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("storage.Load: %w", err)
	}
	s.items = s.normalize(items)

	return s, nil
}

func (s *Store) Key() string {
	return s.key
}

// AddItem merges item into the cart. An existing line with the same ID only
// gains quantity; its name, price and image stay as first added. Quantities
// saturate at domain.MaxQuantity. Items priced in another currency than the
// cart are dropped.
func (s *Store) AddItem(ctx context.Context, item domain.CartItem) {
	if item.Quantity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.accepts(item) {
		return
	}
	item.Quantity = min(item.Quantity, domain.MaxQuantity)

	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity = min(s.items[i].Quantity+item.Quantity, domain.MaxQuantity)
	} else {
		s.items = append(s.items, item)
	}

	s.persist(ctx)
}

func (s *Store) RemoveItem(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(i domain.CartItem) bool { return i.ID == id })

	s.persist(ctx)
}

// UpdateQuantity sets the quantity of line id; quantity <= 0 removes it.
// Quantities above domain.MaxQuantity are capped.
func (s *Store) UpdateQuantity(ctx context.Context, id int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.items = slices.DeleteFunc(s.items, func(i domain.CartItem) bool { return i.ID == id })
	} else if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity = min(quantity, domain.MaxQuantity)
	}

	s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil

	s.persist(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.items)
}

func (s *Store) Total() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.total()
}

// Currency is the unit every line and the total are priced in.
func (s *Store) Currency() currency.Unit {
	return s.currency
}

// Checkout hands a snapshot of the lines and total to place while holding
// the cart, and clears the cart only when place succeeds. Concurrent
// mutations wait until place returns. An empty cart fails with
// domain.ErrEmptyCart without calling place.
func (s *Store) Checkout(ctx context.Context, place func(items []domain.CartItem, total domain.Money) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return domain.ErrEmptyCart
	}

	if err := place(slices.Clone(s.items), s.total()); err != nil {
		return err
	}

	s.items = nil
	s.persist(ctx)

	return nil
}

// ItemCount is the number of units, not of distinct lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *Store) total() domain.Money {
	total := domain.NewMoney(decimal.Zero, s.currency)
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// accepts must be called with mu held.
func (s *Store) accepts(item domain.CartItem) bool {
	if item.Price.Currency == s.currency {
		return true
	}

	s.logger.Warn("cart line currency mismatch",
		zap.String("key", s.key),
		zap.Int64("id", item.ID),
		zap.String("line_currency", item.Price.Currency.String()),
		zap.String("cart_currency", s.currency.String()))
	return false
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(i domain.CartItem) bool { return i.ID == id })
}

// persist must be called with mu held. Failures are logged, not returned.
func (s *Store) persist(ctx context.Context) {
	if err := s.storage.Save(ctx, s.key, slices.Clone(s.items)); err != nil {
		s.logger.Warn("cart write-through failed",
			zap.String("key", s.key),
			zap.Int("lines", len(s.items)),
			zap.Error(err))
	}
}

// normalize enforces one line per ID, quantities within 1..MaxQuantity and
// the cart currency on state read back from storage.
func (s *Store) normalize(items []domain.CartItem) []domain.CartItem {
	var out []domain.CartItem

	for _, item := range items {
		if item.Quantity <= 0 || !s.accepts(item) {
			continue
		}
		item.Quantity = min(item.Quantity, domain.MaxQuantity)
		if i := slices.IndexFunc(out, func(o domain.CartItem) bool { return o.ID == item.ID }); i >= 0 {
			out[i].Quantity = min(out[i].Quantity+item.Quantity, domain.MaxQuantity)
			continue
		}
		out = append(out, item)
	}

	return out
}
