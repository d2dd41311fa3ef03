package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/coinvault/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultIdleTTL = 30 * time.Minute

type entry struct {
	store    *Store
	lastUsed time.Time
}

// Registry hands out one Store per key, hydrating it on first use and
// evicting it once idle. Every change is already written through, so an
// evicted store is rebuilt from storage on the next Get.
type Registry struct {
	storage port.CartStorage
	opts    []Option
	idleTTL time.Duration
	logger  *zap.Logger
	now     func() time.Time

	group singleflight.Group

	mu     sync.Mutex
	stores map[string]*entry
}

// NewRegistry builds a registry; idleTTL <= 0 means DefaultIdleTTL. opts
// apply to every Store it opens.
func NewRegistry(storage port.CartStorage, idleTTL time.Duration, opts ...Option) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}

	base := &Store{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(base)
	}

	return &Registry{
		storage: storage,
		opts:    opts,
		idleTTL: idleTTL,
		logger:  base.logger,
		now:     time.Now,
		stores:  make(map[string]*entry),
	}
}

// Get returns the store for key, hydrating and keeping it when absent.
func (r *Registry) Get(ctx context.Context, key string) (*Store, error) {
	return r.load(ctx, key, true)
}

// View returns the store for key for reading. A store hydrated here is kept
// only when it holds lines, so looking at an empty cart pins nothing.
func (r *Registry) View(ctx context.Context, key string) (*Store, error) {
	return r.load(ctx, key, false)
}

func (r *Registry) load(ctx context.Context, key string, keepEmpty bool) (*Store, error) {
	if s := r.cached(key); s != nil {
		return s, nil
	}

	flight := key
	if !keepEmpty {
		flight = "view:" + key
	}

	v, err, _ := r.group.Do(flight, func() (any, error) {
		if s := r.cached(key); s != nil {
			return s, nil
		}

		s, err := Open(ctx, r.storage, key, r.opts...)
		if err != nil {
			return nil, err
		}
		if !keepEmpty && s.Len() == 0 {
			return s, nil
		}

		return r.keep(key, s), nil
	})
	if err != nil {
		return nil, err
	}

	s, ok := v.(*Store)
	if !ok {
		return nil, fmt.Errorf("unexpected store type %T", v)
	}
	return s, nil
}

func (r *Registry) cached(key string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.stores[key]
	if !ok {
		return nil
	}
	e.lastUsed = r.now()
	return e.store
}

// keep stores s under key unless another store got there first, and returns
// the one that stays.
func (r *Registry) keep(key string, s *Store) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.stores[key]; ok {
		e.lastUsed = r.now()
		return e.store
	}
	r.stores[key] = &entry{store: s, lastUsed: r.now()}
	return s
}

// Evict drops stores unused for longer than the idle TTL and returns how
// many went.
func (r *Registry) Evict() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)

	evicted := 0
	for key, e := range r.stores {
		if e.lastUsed.Before(cutoff) {
			delete(r.stores, key)
			evicted++
		}
	}
	return evicted
}

// Run evicts idle stores every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.idleTTL / 2
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				r.logger.Debug("idle carts evicted", zap.Int("count", n), zap.Int("kept", r.Len()))
			}
		}
	}
}

// Len is the number of stores currently held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.stores)
}
