package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Skotchmaster/aura_shop/internal/changefeed"
	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
	"github.com/Skotchmaster/aura_shop/pkg/telemetry"
)

type Lister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Reader holds the current catalog snapshot, newest product first.
// A failed refresh keeps the previous snapshot and records the error.
type Reader struct {
	repo  Lister
	cache Cache

	mu       sync.RWMutex
	products []models.Product
	loaded   bool
	lastErr  error
	loadedAt time.Time
}

func NewReader(repo Lister, cache Cache) *Reader {
	return &Reader{repo: repo, cache: cache}
}

// Refresh replaces the snapshot with a fresh fetch.
func (r *Reader) Refresh(ctx context.Context) error {
	ctx, end := telemetry.StartSpan(ctx, "catalog.refresh")
	defer end()
	l := logging.FromContext(ctx).With("component", "catalog.reader")

	products, err := r.repo.ListProducts(ctx)
	if err != nil {
		err = fmt.Errorf("fetch products: %w", err)
		l.Error("catalog_refresh_failed", "error", err)
		r.fallback(ctx, l, err)
		return err
	}

	r.mu.Lock()
	r.products = products
	r.loaded = true
	r.lastErr = nil
	r.loadedAt = time.Now()
	r.mu.Unlock()

	if r.cache != nil {
		if cErr := r.cache.Store(ctx, products); cErr != nil {
			l.Warn("catalog_cache_store_failed", "error", cErr)
		}
	}
	l.Info("catalog_refreshed", "products", len(products))
	return nil
}

func (r *Reader) fallback(ctx context.Context, l *slog.Logger, fetchErr error) {
	r.mu.Lock()
	r.lastErr = fetchErr
	loaded := r.loaded
	r.mu.Unlock()

	if loaded || r.cache == nil {
		return
	}

	cached, ok, err := r.cache.Load(ctx)
	if err != nil {
		l.Warn("catalog_cache_load_failed", "error", err)
		return
	}
	if !ok {
		return
	}

	r.mu.Lock()
	if !r.loaded {
		r.products = cached
		r.loaded = true
	}
	r.mu.Unlock()
	l.Info("catalog_served_from_cache", "products", len(cached))
}

// Products returns a copy of the snapshot.
func (r *Reader) Products() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *Reader) Product(id string) (models.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// LastError is the message of the most recent failed refresh, empty after a success.
func (r *Reader) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.lastErr == nil {
		return ""
	}
	return r.lastErr.Error()
}

func (r *Reader) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Run refetches on every change event until ctx ends or events closes.
// Events that queued up during a fetch are collapsed into one refetch.
func (r *Reader) Run(ctx context.Context, events <-chan changefeed.Event) {
	l := logging.FromContext(ctx).With("component", "catalog.reader")
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			l.Debug("catalog_change_event", "source", ev.Source, "op", ev.Op, "product_id", ev.ProductID)
			if !drain(events) {
				_ = r.Refresh(ctx)
				return
			}
			_ = r.Refresh(ctx)
		}
	}
}

// drain empties whatever is buffered and reports whether the channel is still open.
func drain(events <-chan changefeed.Event) bool {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return false
			}
		default:
			return true
		}
	}
}

// Filter keeps products in category (any when empty) and, when featured is set, with that flag.
func Filter(products []models.Product, category string, featured *bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if featured != nil && p.Featured != *featured {
			continue
		}
		out = append(out, p)
	}
	return out
}
