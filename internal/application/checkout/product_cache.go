package checkout

import (
	"context"
	"sync"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductDetailCache is the memoized, keyed lookup from item id to the
// authoritative product record. Records are fetched lazily, exactly once
// per id for the lifetime of the cache, and shared across all consumers;
// the pending marker is the single in-flight gate per key, so no two
// concurrent fetches for the same id are possible. There is no eviction:
// a record, once resolved, lives for the process lifetime. A failed id
// stays failed until a caller explicitly requests Retry.
type ProductDetailCache struct {
	products checkout.ProductService
	bus      shared.EventPublisher
	logger   *zap.Logger

	mu      sync.Mutex
	entries map[int64]*cacheEntry
}

type cacheEntry struct {
	state  checkout.FetchState
	record *checkout.ProductRecord
	err    error
}

// NewProductDetailCache creates a new product detail cache
func NewProductDetailCache(products checkout.ProductService, bus shared.EventPublisher, logger *zap.Logger) *ProductDetailCache {
	return &ProductDetailCache{
		products: products,
		bus:      bus,
		logger:   logger,
		entries:  make(map[int64]*cacheEntry),
	}
}

// Get resolves the cached record and state for an item id without
// blocking. It implements checkout.ProductLookup.
func (c *ProductDetailCache) Get(itemID int64) (*checkout.ProductRecord, checkout.FetchState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[itemID]
	if !ok {
		return nil, checkout.FetchAbsent
	}
	return entry.record, entry.state
}

// FetchError returns the retained error for a failed item id, nil otherwise
func (c *ProductDetailCache) FetchError(itemID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[itemID]; ok && entry.state == checkout.FetchFailed {
		return entry.err
	}
	return nil
}

// Ensure triggers a fetch for the item id unless one is already in flight,
// resolved or failed. It is idempotent and returns immediately; the fetch
// runs in the background and its completion is announced on the event bus.
func (c *ProductDetailCache) Ensure(ctx context.Context, itemID int64) {
	c.mu.Lock()
	if _, ok := c.entries[itemID]; ok {
		c.mu.Unlock()
		return
	}
	c.entries[itemID] = &cacheEntry{state: checkout.FetchPending}
	c.mu.Unlock()

	// The fetch outlives the triggering request on purpose: a line removed
	// while its fetch is pending lets the fetch complete harmlessly and the
	// cache simply gains an entry.
	go c.fetch(context.WithoutCancel(ctx), itemID)
}

// Retry clears a failed entry and fetches again. Ensure on a failed id is
// a no-op; only an explicit retry re-issues the network call.
func (c *ProductDetailCache) Retry(ctx context.Context, itemID int64) {
	c.mu.Lock()
	entry, ok := c.entries[itemID]
	if !ok || entry.state != checkout.FetchFailed {
		c.mu.Unlock()
		return
	}
	c.entries[itemID] = &cacheEntry{state: checkout.FetchPending}
	c.mu.Unlock()

	go c.fetch(context.WithoutCancel(ctx), itemID)
}

func (c *ProductDetailCache) fetch(ctx context.Context, itemID int64) {
	record, err := c.products.FetchProduct(ctx, itemID)

	c.mu.Lock()
	if err != nil {
		c.entries[itemID] = &cacheEntry{state: checkout.FetchFailed, err: err}
	} else {
		c.entries[itemID] = &cacheEntry{state: checkout.FetchResolved, record: &record}
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("product fetch failed",
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)
		_ = c.bus.Publish(ctx, checkout.NewProductFetchFailedEvent(itemID, err.Error()))
		return
	}

	c.logger.Debug("product resolved", zap.Int64("item_id", itemID))
	_ = c.bus.Publish(ctx, checkout.NewProductResolvedEvent(itemID))
}

// Ensure ProductDetailCache implements ProductLookup
var _ checkout.ProductLookup = (*ProductDetailCache)(nil)
